package handlers

import (
	"context"
	"errors"

	"github.com/assetdesk/assetdesk/internal/messages"
	"github.com/assetdesk/assetdesk/internal/server/dto"
)

// SubmitMessage accepts a public contact-form submission.
func (h *Handler) SubmitMessage(ctx context.Context, req *dto.SubmitMessageRequest) (*dto.MessageResponse, error) {
	sub := messages.Submission{
		Name:       req.Name,
		Email:      req.Email,
		Subject:    req.Subject,
		Department: req.Department,
		Body:       req.Message,
	}
	if problems := sub.Validate(); problems != nil {
		return nil, dto.ValidationFailed(problems)
	}
	msg, err := h.Messages.Add(sub)
	if err != nil {
		return nil, dto.StorageError(err)
	}
	return &dto.MessageResponse{Item: msg}, nil
}

// ListMessages returns the newest messages, newest first.
func (h *Handler) ListMessages(ctx context.Context, req *dto.ListMessagesRequest) (*dto.ListMessagesResponse, error) {
	msgs, err := h.Messages.Latest(req.Limit)
	if err != nil {
		return nil, dto.StorageError(err)
	}
	resp := dto.ListMessagesResponse(msgs)
	return &resp, nil
}

// UnreadCount returns the unread badge count.
func (h *Handler) UnreadCount(ctx context.Context, req *dto.UnreadCountRequest) (*dto.UnreadCountResponse, error) {
	unread, err := h.Messages.UnreadCount()
	if err != nil {
		return nil, dto.StorageError(err)
	}
	return &dto.UnreadCountResponse{Unread: unread}, nil
}

// MarkMessageRead flags one message as read.
func (h *Handler) MarkMessageRead(ctx context.Context, req *dto.MarkMessageRequest) (*dto.MarkMessageResponse, error) {
	return h.markMessage(req.ID, true)
}

// MarkMessageUnread flags one message as unread.
func (h *Handler) MarkMessageUnread(ctx context.Context, req *dto.MarkMessageRequest) (*dto.MarkMessageResponse, error) {
	return h.markMessage(req.ID, false)
}

func (h *Handler) markMessage(id string, read bool) (*dto.MarkMessageResponse, error) {
	unread, err := h.Messages.MarkRead(id, read)
	if err != nil {
		if errors.Is(err, messages.ErrNotFound) {
			return nil, dto.NotFound("message")
		}
		return nil, dto.StorageError(err)
	}
	return &dto.MarkMessageResponse{Ok: true, Unread: unread}, nil
}

// DeleteMessage removes one message from the inbox. Deleting an absent id
// reports zero deletions rather than failing.
func (h *Handler) DeleteMessage(ctx context.Context, req *dto.DeleteMessageRequest) (*dto.DeleteMessageResponse, error) {
	deleted, err := h.Messages.Delete(req.ID)
	if err != nil {
		return nil, dto.StorageError(err)
	}
	unread, err := h.Messages.UnreadCount()
	if err != nil {
		return nil, dto.StorageError(err)
	}
	return &dto.DeleteMessageResponse{Deleted: deleted, Unread: unread}, nil
}

// DeleteMessagesBulk removes the selected messages, or the whole inbox.
func (h *Handler) DeleteMessagesBulk(ctx context.Context, req *dto.DeleteBulkRequest) (*dto.DeleteBulkResponse, error) {
	deleted, remaining, err := h.Messages.DeleteBulk(req.IDs, req.All)
	if err != nil {
		return nil, dto.StorageError(err)
	}
	return &dto.DeleteBulkResponse{Deleted: deleted, Remaining: remaining}, nil
}
