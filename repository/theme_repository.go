package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"oferta-studio/db"
	"oferta-studio/layout"
	"oferta-studio/models"
)

// ThemeRepository stores the live theme as a single jsonb document.
// Implements ThemeRepositoryInterface
type ThemeRepository struct{}

// NewThemeRepository creates a new ThemeRepository
func NewThemeRepository() *ThemeRepository {
	return &ThemeRepository{}
}

// Ensure ThemeRepository implements ThemeRepositoryInterface
var _ ThemeRepositoryInterface = (*ThemeRepository)(nil)

// Get loads the theme document. Stored documents pass through the
// migration guard on the way out, so callers always see the current
// per-format shape regardless of how old the row is. A corrupt or
// missing document yields the default theme rather than an error.
func (r *ThemeRepository) Get(ctx context.Context) (*models.Theme, error) {
	var raw []byte
	query := `SELECT doc FROM themes WHERE id = 1`
	err := db.DB.QueryRowContext(ctx, query).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		log.Printf("📄 No theme stored yet, starting from default")
		return models.DefaultTheme(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}

	theme, err := layout.ThemeFromJSON(raw)
	if err != nil {
		if errors.Is(err, layout.ErrInvalidEntityShape) {
			log.Printf("⚠️  Stored theme has an invalid shape, replacing with default: %v", err)
			return models.DefaultTheme(), nil
		}
		return nil, fmt.Errorf("failed to decode theme: %w", err)
	}

	log.Printf("✓ Theme loaded (active format: %s)", theme.ActiveFormatID)
	return theme, nil
}

// Save upserts the theme document.
func (r *ThemeRepository) Save(ctx context.Context, theme *models.Theme) error {
	theme.UpdatedAt = time.Now()

	raw, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("failed to encode theme: %w", err)
	}

	query := `
		INSERT INTO themes (id, doc, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = $1, updated_at = $2
	`
	if _, err := db.DB.ExecContext(ctx, query, raw, theme.UpdatedAt); err != nil {
		log.Printf("❌ Error saving theme: %v", err)
		return fmt.Errorf("failed to save theme: %w", err)
	}

	log.Printf("💾 Theme saved")
	return nil
}
