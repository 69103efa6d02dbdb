package server

import (
	"net/http"
	"time"

	"github.com/assetdesk/assetdesk/internal/config"
	"github.com/assetdesk/assetdesk/internal/server/handlers"
	"github.com/assetdesk/assetdesk/internal/server/ratelimit"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(h *handlers.Handler, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	maxBody := cfg.Limits.MaxRequestBodyBytes

	// Health check
	mux.Handle("GET /api/health", Wrap(h.Health, maxBody))

	// Inventory endpoints
	mux.Handle("GET /api/inventory", Wrap(h.ListRecords, maxBody))
	mux.Handle("POST /api/inventory", Wrap(h.CreateRecord, maxBody))
	mux.Handle("PUT /api/inventory/{id}", Wrap(h.UpdateRecord, maxBody))
	mux.Handle("DELETE /api/inventory/{id}", Wrap(h.DeleteRecord, maxBody))
	mux.Handle("GET /api/inventory/stats", Wrap(h.Stats, maxBody))

	// Import/export endpoints stream file payloads, so they bypass the JSON
	// adapter.
	mux.HandleFunc("POST /api/inventory/import", h.Import)
	mux.HandleFunc("GET /api/inventory/export", h.Export)
	mux.HandleFunc("GET /api/inventory/export.csv", h.ExportCSV)
	mux.HandleFunc("GET /api/inventory/export.xlsx", h.ExportXLSX)
	mux.HandleFunc("GET /api/inventory/sample.csv", h.SampleCSV)
	mux.HandleFunc("GET /api/inventory/sample.xlsx", h.SampleXLSX)

	// Contact inbox endpoints
	mux.Handle("POST /api/contact", Wrap(h.SubmitMessage, maxBody))
	mux.Handle("GET /api/contact", Wrap(h.ListMessages, maxBody))
	mux.Handle("GET /api/contact/unread-count", Wrap(h.UnreadCount, maxBody))
	mux.Handle("POST /api/contact/{id}/read", Wrap(h.MarkMessageRead, maxBody))
	mux.Handle("POST /api/contact/{id}/unread", Wrap(h.MarkMessageUnread, maxBody))
	mux.Handle("DELETE /api/contact/{id}", Wrap(h.DeleteMessage, maxBody))
	mux.Handle("POST /api/contact/delete-bulk", Wrap(h.DeleteMessagesBulk, maxBody))

	limiter := ratelimit.NewLimiter(cfg.RateLimits.WriteRatePerMin, time.Minute, cfg.RateLimits.WriteRatePerMin)

	var handler http.Handler = mux
	handler = RateLimitMiddleware(limiter)(handler)
	handler = AuthMiddleware(cfg)(handler)
	return handler
}
