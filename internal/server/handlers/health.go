package handlers

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/server/dto"
)

// Health returns the health status of the server.
func (h *Handler) Health(ctx context.Context, req *dto.HealthRequest) (*dto.HealthResponse, error) {
	return &dto.HealthResponse{Status: "ok", Version: h.Version}, nil
}
