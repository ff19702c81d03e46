package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"oferta-studio/db"
	"oferta-studio/models"
)

// CompositionRepository stores records of exported artwork.
// Implements CompositionRepositoryInterface
type CompositionRepository struct{}

// NewCompositionRepository creates a new CompositionRepository
func NewCompositionRepository() *CompositionRepository {
	return &CompositionRepository{}
}

// Ensure CompositionRepository implements CompositionRepositoryInterface
var _ CompositionRepositoryInterface = (*CompositionRepository)(nil)

// Insert stores a new saved composition record.
func (r *CompositionRepository) Insert(ctx context.Context, comp *models.SavedComposition) error {
	var snapshot []byte
	if comp.ThemeSnapshot != nil {
		var err error
		snapshot, err = json.Marshal(comp.ThemeSnapshot)
		if err != nil {
			return fmt.Errorf("failed to encode theme snapshot: %w", err)
		}
	}

	query := `
		INSERT INTO saved_compositions (id, image_url, storage_path, format_name, theme_snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := db.DB.ExecContext(ctx, query,
		comp.ID, comp.ImageURL, comp.StoragePath, comp.FormatName, snapshot, comp.CreatedAt)
	if err != nil {
		log.Printf("❌ Error inserting saved composition %s: %v", comp.ID, err)
		return fmt.Errorf("failed to insert saved composition: %w", err)
	}

	log.Printf("💾 Saved composition recorded: %s (%s)", comp.ID, comp.FormatName)
	return nil
}

// List returns all saved compositions, newest first. Theme snapshots are
// not hydrated here; use GetByID when restoring a design.
func (r *CompositionRepository) List(ctx context.Context) ([]models.SavedComposition, error) {
	query := `
		SELECT id, image_url, storage_path, format_name, created_at
		FROM saved_compositions
		ORDER BY created_at DESC
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved compositions: %w", err)
	}
	defer rows.Close()

	var comps []models.SavedComposition
	for rows.Next() {
		var c models.SavedComposition
		if err := rows.Scan(&c.ID, &c.ImageURL, &c.StoragePath, &c.FormatName, &c.CreatedAt); err != nil {
			log.Printf("❌ Error scanning saved composition: %v", err)
			continue
		}
		comps = append(comps, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved compositions: %w", err)
	}

	log.Printf("✓ Loaded %d saved compositions", len(comps))
	return comps, nil
}

// GetByID retrieves one saved composition including its theme snapshot.
func (r *CompositionRepository) GetByID(ctx context.Context, id string) (*models.SavedComposition, error) {
	query := `
		SELECT id, image_url, storage_path, format_name, theme_snapshot, created_at
		FROM saved_compositions
		WHERE id = $1
	`
	var c models.SavedComposition
	var snapshot []byte
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ImageURL, &c.StoragePath, &c.FormatName, &snapshot, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("saved composition %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved composition: %w", err)
	}

	if len(snapshot) > 0 {
		var theme models.Theme
		if err := json.Unmarshal(snapshot, &theme); err != nil {
			log.Printf("⚠️  Corrupt theme snapshot on composition %s: %v", id, err)
		} else {
			c.ThemeSnapshot = &theme
		}
	}

	return &c, nil
}

// Delete removes a saved composition record.
func (r *CompositionRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM saved_compositions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved composition: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("saved composition %s not found", id)
	}

	log.Printf("🗑️  Saved composition deleted: %s", id)
	return nil
}
