package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/assetdesk/assetdesk/internal/inventory"
	"github.com/assetdesk/assetdesk/internal/server/dto"
	"github.com/assetdesk/assetdesk/internal/tabular"
	"github.com/assetdesk/assetdesk/internal/utils"
)

// mapTabularError translates codec errors into API errors.
func mapTabularError(err error) *dto.APIError {
	var mismatch *tabular.SchemaMismatchError
	switch {
	case errors.As(err, &mismatch):
		return dto.SchemaMismatch(tabular.RequiredColumns, mismatch.Missing)
	case errors.Is(err, tabular.ErrEmptyInput):
		return dto.EmptyInput()
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		return dto.UnsupportedFormat()
	default:
		return dto.BadRequest("could not parse upload").Wrap(err)
	}
}

// Import ingests a CSV or XLSX upload from the multipart field "file" and
// reconciles it against the stored records in one batch.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		utils.RespondError(w, dto.BadRequest("invalid multipart form").Wrap(err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, dto.MissingField("file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, dto.BadRequest("failed to read upload").Wrap(err))
		return
	}

	rows, err := tabular.Decode(header.Filename, data)
	if err != nil {
		utils.RespondError(w, mapTabularError(err))
		return
	}

	summary, err := h.Inventory.Import(rows)
	if err != nil {
		utils.RespondError(w, dto.StorageError(err))
		return
	}
	slog.InfoContext(r.Context(), "Imported inventory batch",
		"file", header.Filename, "inserted", summary.Inserted, "updated", summary.Updated)
	utils.RespondJSON(w, http.StatusOK, dto.ImportResponse{
		Updated:  summary.Updated,
		Inserted: summary.Inserted,
		Total:    summary.Total,
	})
}

// Export returns the full healed record set. fmt=json yields a JSON array;
// anything else, the bare call included, serves a CSV attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	records, err := h.Inventory.Export()
	if err != nil {
		utils.RespondError(w, dto.StorageError(err))
		return
	}

	if r.URL.Query().Get("fmt") == "json" {
		utils.RespondJSON(w, http.StatusOK, records)
		return
	}
	h.writeCSVAttachment(w, r, records, exportFilename("csv"))
}

// ExportCSV returns the full record set as a CSV attachment.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, err := h.Inventory.Export()
	if err != nil {
		utils.RespondError(w, dto.StorageError(err))
		return
	}
	h.writeCSVAttachment(w, r, records, exportFilename("csv"))
}

// ExportXLSX returns the full record set as an XLSX attachment.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	records, err := h.Inventory.Export()
	if err != nil {
		utils.RespondError(w, dto.StorageError(err))
		return
	}
	data, err := tabular.EncodeXLSX(records)
	if err != nil {
		utils.RespondError(w, dto.Internal("failed to encode workbook").Wrap(err))
		return
	}
	writeAttachment(w, data, exportFilename("xlsx"),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// SampleCSV returns a one-row template upload in CSV form.
func (h *Handler) SampleCSV(w http.ResponseWriter, r *http.Request) {
	h.writeCSVAttachment(w, r, sampleRecords(), "sample.csv")
}

// SampleXLSX returns a one-row template upload in XLSX form.
func (h *Handler) SampleXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := tabular.EncodeXLSX(sampleRecords())
	if err != nil {
		utils.RespondError(w, dto.Internal("failed to encode workbook").Wrap(err))
		return
	}
	writeAttachment(w, data, "sample.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (h *Handler) writeCSVAttachment(w http.ResponseWriter, r *http.Request, records []inventory.Record, filename string) {
	data, err := tabular.EncodeCSV(records)
	if err != nil {
		utils.RespondError(w, dto.Internal("failed to encode csv").Wrap(err))
		return
	}
	writeAttachment(w, data, filename, "text/csv; charset=utf-8")
}

func writeAttachment(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

func exportFilename(ext string) string {
	return fmt.Sprintf("inventory_%s.%s", time.Now().Format("20060102_150405"), ext)
}

// sampleRecords returns the template row offered for download next to the
// import form.
func sampleRecords() []inventory.Record {
	return []inventory.Record{{
		ID:         "1",
		Owner:      "Jane Doe",
		Department: "Finance",
		Model:      "ThinkPad T14",
		IP:         "10.0.0.15",
		OS:         "Windows 11",
		Status:     "active",
	}}
}
