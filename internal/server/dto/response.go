package dto

import (
	"github.com/assetdesk/assetdesk/internal/inventory"
	"github.com/assetdesk/assetdesk/internal/messages"
)

// Inventory records serialize with dynamic passthrough columns, so the
// domain type is reused directly instead of mirroring it here; a parallel
// dto struct would have to duplicate its ordered-extras marshaling.

// RecordResponse wraps one inventory record.
type RecordResponse struct {
	Item inventory.Record `json:"item"`
}

// ListRecordsResponse is a filtered, paginated record page.
type ListRecordsResponse = []inventory.Record

// DeleteRecordResponse reports how many records were deleted (0 or 1).
type DeleteRecordResponse struct {
	Deleted int `json:"deleted"`
}

// ImportResponse reports the outcome of one reconciliation batch.
type ImportResponse struct {
	Updated  int `json:"updated"`
	Inserted int `json:"inserted"`
	Total    int `json:"total"`
}

// StatsResponse carries the dashboard counters.
type StatsResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	ByOS     map[string]int `json:"by_os"`
}

// MessageResponse wraps one contact message.
type MessageResponse struct {
	Item messages.Message `json:"item"`
}

// ListMessagesResponse is the newest-first message page.
type ListMessagesResponse = []messages.Message

// UnreadCountResponse carries the unread badge count.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// MarkMessageResponse reports a read-flag change.
type MarkMessageResponse struct {
	Ok     bool `json:"ok"`
	Unread int  `json:"unread"`
}

// DeleteMessageResponse reports a single-message deletion.
type DeleteMessageResponse struct {
	Deleted int `json:"deleted"`
	Unread  int `json:"unread"`
}

// DeleteBulkResponse reports a bulk deletion.
type DeleteBulkResponse struct {
	Deleted   int `json:"deleted"`
	Remaining int `json:"remaining"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
