// Package handlers implements the HTTP handlers for the inventory API.
package handlers

import (
	"github.com/assetdesk/assetdesk/internal/inventory"
	"github.com/assetdesk/assetdesk/internal/messages"
)

// Handler holds the services the HTTP layer dispatches to.
type Handler struct {
	Inventory *inventory.Service
	Messages  *messages.Service
	Version   string

	// MaxUploadBytes caps multipart import payloads.
	MaxUploadBytes int64
}

// New creates a Handler.
func New(inv *inventory.Service, msgs *messages.Service, version string, maxUploadBytes int64) *Handler {
	return &Handler{
		Inventory:      inv,
		Messages:       msgs,
		Version:        version,
		MaxUploadBytes: maxUploadBytes,
	}
}
