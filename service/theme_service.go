package service

import (
	"context"
	"fmt"
	"log"

	"oferta-studio/layout"
	"oferta-studio/models"
	"oferta-studio/repository"
)

// ThemeService owns the live theme: loads it through the migration
// guard, applies edits and persists them. All reads and writes go
// through the session so the renderer and the editor agree on state.
type ThemeService struct {
	repo repository.ThemeRepositoryInterface
}

// NewThemeService creates a new ThemeService
func NewThemeService(repo repository.ThemeRepositoryInterface) *ThemeService {
	return &ThemeService{repo: repo}
}

// Load hydrates the session theme from storage. The repository already
// runs the migration guard; EnsureTheme is applied again here so a
// session is valid even when the repository is swapped out in tests.
func (s *ThemeService) Load(ctx context.Context, session *Session) error {
	theme, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	session.Theme = layout.EnsureTheme(theme)
	log.Printf("✓ Session theme ready (format %s, art %s)", session.Theme.ActiveFormatID, session.Theme.HeaderArtVariant)
	return nil
}

// Update replaces the session theme with an edited copy, normalizing it
// first, and persists the result.
func (s *ThemeService) Update(ctx context.Context, session *Session, theme *models.Theme) error {
	if theme == nil {
		return fmt.Errorf("theme is required")
	}
	session.Theme = layout.EnsureTheme(theme)
	if err := s.repo.Save(ctx, session.Theme); err != nil {
		return err
	}
	return nil
}

// SetActiveFormat switches the format the editor is working in. The
// guard guarantees every per-format map already has an entry for it.
func (s *ThemeService) SetActiveFormat(ctx context.Context, session *Session, formatID string) error {
	if !models.IsFormatID(formatID) {
		return fmt.Errorf("unknown format id %q", formatID)
	}
	session.Theme.ActiveFormatID = formatID
	layout.EnsureTheme(session.Theme)
	if err := s.repo.Save(ctx, session.Theme); err != nil {
		return err
	}
	log.Printf("🔄 Active format switched to %s", formatID)
	return nil
}

// Reset discards the session theme for the default and persists it.
func (s *ThemeService) Reset(ctx context.Context, session *Session) error {
	session.Theme = models.DefaultTheme()
	return s.repo.Save(ctx, session.Theme)
}
