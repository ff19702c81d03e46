package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"oferta-studio/models"
	"oferta-studio/service"
)

// ExportController handles HTTP requests for exporting artwork and
// managing saved compositions
type ExportController struct {
	exportService      *service.ExportService
	compositionService *service.CompositionService
	session            *service.Session
}

// NewExportController creates a new ExportController
func NewExportController(exportService *service.ExportService, compositionService *service.CompositionService, session *service.Session) *ExportController {
	return &ExportController{
		exportService:      exportService,
		compositionService: compositionService,
		session:            session,
	}
}

// exportStatus maps an export error to the HTTP status it should carry.
func exportStatus(err error) int {
	if errors.Is(err, service.ErrExportInProgress) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ExportPNG handles POST /admin/oferta/export?format=<id>
// Streams a single PNG at the format's exact pixel dimensions.
func (c *ExportController) ExportPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	formatID := r.URL.Query().Get("format")
	if formatID == "" {
		formatID = c.session.Theme.ActiveFormatID
	}

	data, filename, err := c.exportService.ExportOne(r.Context(), c.session, formatID)
	if err != nil {
		log.Printf("❌ Export failed for format %s: %v", formatID, err)
		http.Error(w, fmt.Sprintf("Failed to export: %v", err), exportStatus(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// ExportBatch handles POST /admin/oferta/export/batch?format=<id>
// Streams a ZIP with one slide per product.
func (c *ExportController) ExportBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	formatID := r.URL.Query().Get("format")
	if formatID == "" {
		formatID = models.FormatTV
	}

	data, filename, err := c.exportService.ExportBatch(r.Context(), c.session, formatID)
	if err != nil {
		log.Printf("❌ Batch export failed for format %s: %v", formatID, err)
		http.Error(w, fmt.Sprintf("Failed to export batch: %v", err), exportStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// SaveAll handles POST /admin/oferta/export/save-all
// Body: {"formatIds": ["story", "feed", ...]}; empty means all formats.
func (c *ExportController) SaveAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		FormatIDs []string `json:"formatIds"`
	}
	if r.Body != nil {
		// An empty body is fine; it means every registered format.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if len(req.FormatIDs) == 0 {
		req.FormatIDs = models.FormatIDs()
	}

	result, err := c.exportService.SaveAll(r.Context(), c.session, req.FormatIDs)
	if err != nil {
		log.Printf("❌ Save-all failed: %v", err)
		http.Error(w, fmt.Sprintf("Failed to save: %v", err), exportStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(result.Saved) == 0 && len(result.Failed) > 0 {
		w.WriteHeader(http.StatusBadGateway)
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListCompositions handles GET /admin/oferta/compositions
func (c *ExportController) ListCompositions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	comps, err := c.compositionService.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list compositions: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(comps); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// CompositionByID routes /admin/oferta/compositions/:id
// GET returns the record, DELETE removes it, POST :id/restore loads its
// theme snapshot into the session.
func (c *ExportController) CompositionByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/oferta/compositions/")
	if path == "" {
		http.Error(w, "composition id is required", http.StatusBadRequest)
		return
	}

	if strings.HasSuffix(path, "/restore") {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimSuffix(path, "/restore")
		if err := c.compositionService.Restore(r.Context(), id, c.session); err != nil {
			http.Error(w, fmt.Sprintf("Failed to restore composition: %v", err), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(c.session.Theme); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		comp, err := c.compositionService.Get(r.Context(), path)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get composition: %v", err), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(comp); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	case http.MethodDelete:
		if err := c.compositionService.Delete(r.Context(), path); err != nil {
			http.Error(w, fmt.Sprintf("Failed to delete composition: %v", err), http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
