package router

import (
	"net/http"

	"oferta-studio/app/controller"
)

type Controllers struct {
	Theme   *controller.ThemeController
	Product *controller.ProductController
	Export  *controller.ExportController
	Render  *controller.RenderController
	AI      *controller.AIController
	Asset   *controller.AssetController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Format registry
	http.HandleFunc("/admin/oferta/formats", controllers.Theme.ListFormats)

	// Theme routes
	http.HandleFunc("/admin/oferta/theme/format", controllers.Theme.SetActiveFormat)
	http.HandleFunc("/admin/oferta/theme/reset", controllers.Theme.ResetTheme)
	http.HandleFunc("/admin/oferta/theme", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Theme.GetTheme(w, r)
		} else if r.Method == http.MethodPut {
			controllers.Theme.UpdateTheme(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Product routes
	http.HandleFunc("/admin/oferta/products/reorder", controllers.Product.ReorderProducts)
	http.HandleFunc("/admin/oferta/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Product.ListProducts(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Product.CreateProduct(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	http.HandleFunc("/admin/oferta/products/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut || r.Method == http.MethodPatch {
			controllers.Product.UpdateProduct(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Product.DeleteProduct(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Export routes
	http.HandleFunc("/admin/oferta/export/batch", controllers.Export.ExportBatch)
	http.HandleFunc("/admin/oferta/export/save-all", controllers.Export.SaveAll)
	http.HandleFunc("/admin/oferta/export", controllers.Export.ExportPNG)

	// Saved compositions
	http.HandleFunc("/admin/oferta/compositions", controllers.Export.ListCompositions)
	http.HandleFunc("/admin/oferta/compositions/", controllers.Export.CompositionByID)

	// HTML preview and browser capture
	http.HandleFunc("/admin/oferta/render", controllers.Render.RenderPreview)
	http.HandleFunc("/admin/oferta/capture/pdf", controllers.Render.CapturePDF)
	http.HandleFunc("/admin/oferta/capture", controllers.Render.CapturePreview)

	// AI suggestions
	http.HandleFunc("/admin/oferta/ai/text", controllers.AI.SuggestText)
	http.HandleFunc("/admin/oferta/ai/image", controllers.AI.SuggestImage)

	// Uploaded artwork
	http.HandleFunc("/admin/oferta/assets", controllers.Asset.UploadAsset)
	http.HandleFunc("/assets/", controllers.Asset.ServeAsset)

	// Bundled fonts for the HTML preview
	http.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}
