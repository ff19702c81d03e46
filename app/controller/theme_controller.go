package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"oferta-studio/models"
	"oferta-studio/service"
)

// ThemeController handles HTTP requests for the live theme
type ThemeController struct {
	themeService *service.ThemeService
	session      *service.Session
}

// NewThemeController creates a new ThemeController
func NewThemeController(themeService *service.ThemeService, session *service.Session) *ThemeController {
	return &ThemeController{
		themeService: themeService,
		session:      session,
	}
}

// GetTheme handles GET /admin/oferta/theme
func (c *ThemeController) GetTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.session.Theme); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// UpdateTheme handles PUT /admin/oferta/theme
func (c *ThemeController) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var theme models.Theme
	if err := json.NewDecoder(r.Body).Decode(&theme); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.themeService.Update(r.Context(), c.session, &theme); err != nil {
		http.Error(w, fmt.Sprintf("Failed to update theme: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.session.Theme); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// SetActiveFormat handles POST /admin/oferta/theme/format
func (c *ThemeController) SetActiveFormat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		FormatID string `json:"formatId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.themeService.SetActiveFormat(r.Context(), c.session, req.FormatID); err != nil {
		http.Error(w, fmt.Sprintf("Failed to switch format: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(fmt.Sprintf(`{"activeFormatId":%q}`, c.session.Theme.ActiveFormatID)))
}

// ResetTheme handles POST /admin/oferta/theme/reset
func (c *ThemeController) ResetTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := c.themeService.Reset(r.Context(), c.session); err != nil {
		http.Error(w, fmt.Sprintf("Failed to reset theme: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.session.Theme); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListFormats handles GET /admin/oferta/formats
func (c *ThemeController) ListFormats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(models.Formats()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
