package repository

import (
	"context"

	"oferta-studio/models"
)

// ThemeRepositoryInterface defines the contract for theme persistence.
// The editor works on a single live theme document.
type ThemeRepositoryInterface interface {
	Get(ctx context.Context) (*models.Theme, error)
	Save(ctx context.Context, theme *models.Theme) error
}

// ProductRepositoryInterface defines the contract for product persistence
type ProductRepositoryInterface interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	SaveAll(ctx context.Context, products []models.Product) error
}

// CompositionRepositoryInterface defines the contract for saved composition records
type CompositionRepositoryInterface interface {
	Insert(ctx context.Context, comp *models.SavedComposition) error
	List(ctx context.Context) ([]models.SavedComposition, error)
	GetByID(ctx context.Context, id string) (*models.SavedComposition, error)
	Delete(ctx context.Context, id string) error
}
