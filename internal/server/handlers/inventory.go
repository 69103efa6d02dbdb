package handlers

import (
	"context"
	"errors"

	"github.com/assetdesk/assetdesk/internal/inventory"
	"github.com/assetdesk/assetdesk/internal/server/dto"
)

// toPayload maps the request body onto the domain payload, keeping the
// canonical and legacy alias keys separate so the service can pick in
// precedence order.
func toPayload(p dto.RecordPayload) inventory.Payload {
	return inventory.Payload{
		ID:     p.ID,
		Owner:  p.Owner,
		User:   p.User,
		Dept:   p.Department,
		Loc:    p.Location,
		Model:  p.Model,
		Name:   p.Name,
		IP:     p.IP,
		OS:     p.OS,
		Status: p.Status,
	}
}

// mapRecordError translates domain errors into API errors.
func mapRecordError(err error) error {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		return dto.NotFound("record")
	case errors.Is(err, inventory.ErrDuplicateID):
		return dto.Conflict("record id already exists")
	default:
		return dto.StorageError(err)
	}
}

// ListRecords returns the filtered, paginated record page.
func (h *Handler) ListRecords(ctx context.Context, req *dto.ListInventoryRequest) (*dto.ListRecordsResponse, error) {
	records, err := h.Inventory.List(req.Q, req.Offset, req.Limit)
	if err != nil {
		return nil, dto.StorageError(err)
	}
	resp := dto.ListRecordsResponse(records)
	return &resp, nil
}

// CreateRecord inserts one record, allocating an id when none is supplied.
func (h *Handler) CreateRecord(ctx context.Context, req *dto.CreateRecordRequest) (*dto.RecordResponse, error) {
	record, err := h.Inventory.Create(toPayload(req.RecordPayload))
	if err != nil {
		return nil, mapRecordError(err)
	}
	return &dto.RecordResponse{Item: record}, nil
}

// UpdateRecord patches the record addressed by the path id.
func (h *Handler) UpdateRecord(ctx context.Context, req *dto.UpdateRecordRequest) (*dto.RecordResponse, error) {
	record, err := h.Inventory.Update(req.ID, toPayload(req.RecordPayload))
	if err != nil {
		return nil, mapRecordError(err)
	}
	return &dto.RecordResponse{Item: record}, nil
}

// DeleteRecord removes the record addressed by the path id. Deleting an
// absent id is not an error.
func (h *Handler) DeleteRecord(ctx context.Context, req *dto.DeleteRecordRequest) (*dto.DeleteRecordResponse, error) {
	deleted, err := h.Inventory.Delete(req.ID)
	if err != nil {
		return nil, dto.StorageError(err)
	}
	return &dto.DeleteRecordResponse{Deleted: deleted}, nil
}

// Stats returns the dashboard counters over the healed record set.
func (h *Handler) Stats(ctx context.Context, req *dto.StatsRequest) (*dto.StatsResponse, error) {
	stats, err := h.Inventory.Stats()
	if err != nil {
		return nil, dto.StorageError(err)
	}
	return &dto.StatsResponse{
		Total:    stats.Total,
		ByStatus: stats.ByStatus,
		ByOS:     stats.ByOS,
	}, nil
}
