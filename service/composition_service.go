package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"oferta-studio/models"
	"oferta-studio/repository"
)

// CompositionService manages the lifecycle of exported artwork records.
type CompositionService struct {
	repo    repository.CompositionRepositoryInterface
	storage StorageServiceInterface
}

// NewCompositionService creates a new CompositionService. storage may be
// nil, in which case Delete only removes the database record.
func NewCompositionService(repo repository.CompositionRepositoryInterface, storage StorageServiceInterface) *CompositionService {
	return &CompositionService{repo: repo, storage: storage}
}

// Ensure CompositionService implements CompositionServiceInterface
var _ CompositionServiceInterface = (*CompositionService)(nil)

// Create records an uploaded artifact together with a snapshot of the
// theme it was rendered from, so the design can be restored later.
func (s *CompositionService) Create(ctx context.Context, imageURL, storagePath, formatName string, theme *models.Theme) (*models.SavedComposition, error) {
	comp := &models.SavedComposition{
		ID:            uuid.NewString(),
		ImageURL:      imageURL,
		StoragePath:   storagePath,
		FormatName:    formatName,
		CreatedAt:     time.Now(),
		ThemeSnapshot: theme.Clone(),
	}

	if err := s.repo.Insert(ctx, comp); err != nil {
		return nil, err
	}
	return comp, nil
}

// List returns all saved compositions, newest first.
func (s *CompositionService) List(ctx context.Context) ([]models.SavedComposition, error) {
	return s.repo.List(ctx)
}

// Get retrieves one saved composition with its theme snapshot.
func (s *CompositionService) Get(ctx context.Context, id string) (*models.SavedComposition, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes the record and, when storage is wired, the uploaded
// file behind it. A failed storage delete does not resurrect the record;
// it is logged and the orphan file stays in the folder.
func (s *CompositionService) Delete(ctx context.Context, id string) error {
	comp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.storage != nil && comp.StoragePath != "" {
		if err := s.storage.Delete(ctx, comp.StoragePath); err != nil {
			log.Printf("⚠️  Failed to delete storage file for composition %s: %v", id, err)
		}
	}

	return nil
}

// Restore loads a saved composition's theme snapshot into the live
// session, replacing the current design.
func (s *CompositionService) Restore(ctx context.Context, id string, session *Session) error {
	comp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comp.ThemeSnapshot == nil {
		return fmt.Errorf("composition %s has no theme snapshot", id)
	}

	session.Theme = comp.ThemeSnapshot.Clone()
	log.Printf("🔄 Restored theme from composition %s (%s)", id, comp.FormatName)
	return nil
}
