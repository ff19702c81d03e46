package controller

import (
	"fmt"
	"log"
	"net/http"

	"oferta-studio/service"
)

// RenderController serves the HTML preview of the live composition and
// the browser-captured PNG built from it
type RenderController struct {
	previewService *service.PreviewService
	session        *service.Session
}

// NewRenderController creates a new RenderController
func NewRenderController(previewService *service.PreviewService, session *service.Session) *RenderController {
	return &RenderController{
		previewService: previewService,
		session:        session,
	}
}

// RenderPreview handles GET /admin/oferta/render?format=<id>&base64=1
// Serves the HTML preview page that headless Chrome screenshots. With
// base64=1 the images are inlined for direct browser viewing.
func (c *RenderController) RenderPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	formatID := r.URL.Query().Get("format")
	if formatID == "" {
		formatID = c.session.Theme.ActiveFormatID
	}
	useBase64 := r.URL.Query().Get("base64") == "1"

	html, err := c.previewService.RenderPreviewHTML(c.session.Theme, c.session.Products, formatID, useBase64)
	if err != nil {
		log.Printf("❌ Preview render failed for format %s: %v", formatID, err)
		http.Error(w, fmt.Sprintf("Failed to render preview: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// CapturePreview handles POST /admin/oferta/capture?format=<id>
// Screenshots the preview page through headless Chrome and streams the
// PNG at the format's exact pixel dimensions.
func (c *RenderController) CapturePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	formatID := r.URL.Query().Get("format")
	if formatID == "" {
		formatID = c.session.Theme.ActiveFormatID
	}

	data, err := c.previewService.CapturePNG(r.Context(), formatID)
	if err != nil {
		log.Printf("❌ Browser capture failed for format %s: %v", formatID, err)
		http.Error(w, fmt.Sprintf("Failed to capture preview: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

// CapturePDF handles POST /admin/oferta/capture/pdf?format=<id>
// Prints the preview page to a PDF sized to the format's physical
// dimensions, intended for the print formats.
func (c *RenderController) CapturePDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	formatID := r.URL.Query().Get("format")
	if formatID == "" {
		formatID = c.session.Theme.ActiveFormatID
	}

	data, err := c.previewService.CapturePDF(r.Context(), formatID)
	if err != nil {
		log.Printf("❌ PDF capture failed for format %s: %v", formatID, err)
		http.Error(w, fmt.Sprintf("Failed to capture pdf: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="oferta.pdf"`)
	w.Write(data)
}
