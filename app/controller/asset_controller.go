package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"oferta-studio/service"
)

// AssetController handles uploaded artwork (product photos, header
// images, logos) stored on local disk
type AssetController struct {
	assetService *service.AssetService
}

// NewAssetController creates a new AssetController
func NewAssetController(assetService *service.AssetService) *AssetController {
	return &AssetController{assetService: assetService}
}

// UploadAsset handles POST /admin/oferta/assets
// Accepts multipart form field "image" or a raw image body.
func (c *AssetController) UploadAsset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var data []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("image")
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid upload: %v", err), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, err = io.ReadAll(io.LimitReader(file, 32<<20))
		if err != nil {
			http.Error(w, "Failed to read upload", http.StatusBadRequest)
			return
		}
	} else {
		var err error
		data, err = io.ReadAll(io.LimitReader(r.Body, 32<<20))
		if err != nil {
			http.Error(w, "Failed to read upload", http.StatusBadRequest)
			return
		}
	}

	if len(data) == 0 {
		http.Error(w, "image data is required", http.StatusBadRequest)
		return
	}

	url, err := c.assetService.Save(data)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to store asset: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]string{"url": url}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ServeAsset handles GET /assets/:name
func (c *AssetController) ServeAsset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/assets/")
	if name == "" {
		http.Error(w, "asset name is required", http.StatusBadRequest)
		return
	}

	data, err := c.assetService.Read(name)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}
