package dto

// --- Inventory ---

// RecordPayload is a partial inventory record in a write request body.
// Nil fields were not supplied. Legacy alias keys (user, location, name)
// are accepted as fallback sources for their canonical fields.
type RecordPayload struct {
	ID         *string `json:"id"`
	Owner      *string `json:"owner"`
	User       *string `json:"user"`
	Department *string `json:"department"`
	Location   *string `json:"location"`
	Model      *string `json:"model"`
	Name       *string `json:"name"`
	IP         *string `json:"ip"`
	OS         *string `json:"os"`
	Status     *string `json:"status"`
}

// ListInventoryRequest is a request to list inventory records.
type ListInventoryRequest struct {
	Q      string `query:"q"`
	Offset int    `query:"offset"`
	Limit  int    `query:"limit"`
}

// Validate is a no-op: offset/limit are clamped, not rejected.
func (r *ListInventoryRequest) Validate() error {
	return nil
}

// CreateRecordRequest is a request to create one inventory record.
type CreateRecordRequest struct {
	RecordPayload
}

// Validate accepts any partial record; fields are normalized and truncated
// rather than rejected.
func (r *CreateRecordRequest) Validate() error {
	return nil
}

// UpdateRecordRequest is a request to update one inventory record.
type UpdateRecordRequest struct {
	ID string `path:"id"`
	RecordPayload
}

// Validate validates the update request fields.
func (r *UpdateRecordRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// DeleteRecordRequest is a request to delete one inventory record.
type DeleteRecordRequest struct {
	ID string `path:"id"`
}

// Validate validates the delete request fields.
func (r *DeleteRecordRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// StatsRequest is a request for inventory dashboard counters.
type StatsRequest struct{}

// Validate is a no-op for StatsRequest.
func (r *StatsRequest) Validate() error {
	return nil
}

// --- Contact ---

// SubmitMessageRequest is a public contact-form submission.
type SubmitMessageRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Department string `json:"department"`
	Message    string `json:"message"`
}

// Validate defers to the messages service for per-field checks.
func (r *SubmitMessageRequest) Validate() error {
	return nil
}

// ListMessagesRequest is a request for the latest contact messages.
type ListMessagesRequest struct {
	Limit int `query:"limit"`
}

// Validate is a no-op: limit is clamped, not rejected.
func (r *ListMessagesRequest) Validate() error {
	return nil
}

// UnreadCountRequest is a request for the unread message count.
type UnreadCountRequest struct{}

// Validate is a no-op for UnreadCountRequest.
func (r *UnreadCountRequest) Validate() error {
	return nil
}

// MarkMessageRequest flips the read flag on one message.
type MarkMessageRequest struct {
	ID string `path:"id"`
}

// Validate validates the mark request fields.
func (r *MarkMessageRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// DeleteMessageRequest deletes one message.
type DeleteMessageRequest struct {
	ID string `path:"id"`
}

// Validate validates the delete request fields.
func (r *DeleteMessageRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// DeleteBulkRequest deletes the selected messages, or all of them.
type DeleteBulkRequest struct {
	IDs []string `json:"ids"`
	All bool     `json:"all"`
}

// Validate requires either ids or all.
func (r *DeleteBulkRequest) Validate() error {
	if !r.All && len(r.IDs) == 0 {
		return BadRequest("ids or all required")
	}
	return nil
}

// --- Health ---

// HealthRequest is a health check request.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error {
	return nil
}
