package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"oferta-studio/app/controller"
	"oferta-studio/app/router"
	"oferta-studio/db"
	"oferta-studio/render"
	"oferta-studio/repository"
	"oferta-studio/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Storage collaborator is optional: without credentials the studio
	// still composes and exports, it just cannot save-all to the cloud.
	var storage service.StorageServiceInterface
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath != "" {
		drive, err := service.NewDriveStorageService(credentialsPath, os.Getenv("DRIVE_FOLDER_ID"))
		if err != nil {
			return fmt.Errorf("failed to initialize drive storage: %w", err)
		}
		storage = drive
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, save-all disabled")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Repositories
	themeRepo := repository.NewThemeRepository()
	productRepo := repository.NewProductRepository()
	compositionRepo := repository.NewCompositionRepository()

	// Services
	themeService := service.NewThemeService(themeRepo)
	productService := service.NewProductService(productRepo)
	compositionService := service.NewCompositionService(compositionRepo, storage)
	previewService := service.NewPreviewService(baseURL)
	aiService := service.NewAIService(os.Getenv("AI_GATEWAY_URL"))
	assetService := service.NewAssetService()

	fonts := render.NewFontLibrary(os.Getenv("FONT_DIR"))
	loader := render.NewHTTPImageLoader()
	exportService := service.NewExportService(fonts, loader, storage, compositionService)

	// Live editing session, hydrated from storage through the migration
	// guard before the first request is served.
	session := service.NewSession()
	ctx := context.Background()
	if err := themeService.Load(ctx, session); err != nil {
		return err
	}
	if err := productService.Load(ctx, session); err != nil {
		return err
	}

	// Create controllers
	controllers := &router.Controllers{
		Theme:   controller.NewThemeController(themeService, session),
		Product: controller.NewProductController(productService, session),
		Export:  controller.NewExportController(exportService, compositionService, session),
		Render:  controller.NewRenderController(previewService, session),
		AI:      controller.NewAIController(aiService),
		Asset:   controller.NewAssetController(assetService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
