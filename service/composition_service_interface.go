package service

import (
	"context"

	"oferta-studio/models"
)

// CompositionServiceInterface defines the contract for the saved
// composition lifecycle.
type CompositionServiceInterface interface {
	Create(ctx context.Context, imageURL, storagePath, formatName string, theme *models.Theme) (*models.SavedComposition, error)
	List(ctx context.Context) ([]models.SavedComposition, error)
	Get(ctx context.Context, id string) (*models.SavedComposition, error)
	Delete(ctx context.Context, id string) error
}
