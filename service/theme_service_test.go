package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oferta-studio/models"
)

// stubThemeRepo is an in-memory ThemeRepositoryInterface.
type stubThemeRepo struct {
	theme *models.Theme
	saves int
}

func (r *stubThemeRepo) Get(context.Context) (*models.Theme, error) {
	if r.theme == nil {
		return models.DefaultTheme(), nil
	}
	return r.theme.Clone(), nil
}

func (r *stubThemeRepo) Save(_ context.Context, theme *models.Theme) error {
	r.theme = theme.Clone()
	r.saves++
	return nil
}

func TestThemeServiceLoadNormalizes(t *testing.T) {
	// A stored theme with gaps and out-of-range fields must come out of
	// Load fully usable.
	repo := &stubThemeRepo{theme: &models.Theme{
		PrimaryColor:     "#FF0000",
		HeaderArtVariant: "zigzag",
		ActiveFormatID:   "billboard",
	}}
	svc := NewThemeService(repo)
	session := NewSession()

	require.NoError(t, svc.Load(context.Background(), session))

	assert.Equal(t, "#FF0000", session.Theme.PrimaryColor)
	assert.Equal(t, models.DefaultFormatID, session.Theme.ActiveFormatID)
	assert.Equal(t, models.HeaderArtWave, session.Theme.HeaderArtVariant, "unknown art variant falls back")
	for _, id := range models.FormatIDs() {
		assert.Contains(t, session.Theme.HeaderElements, id)
		assert.Contains(t, session.Theme.LogoLayouts, id)
	}
}

func TestThemeServiceUpdate(t *testing.T) {
	repo := &stubThemeRepo{}
	svc := NewThemeService(repo)
	session := NewSession()

	edited := models.DefaultTheme()
	edited.PrimaryColor = "#004D40"
	edited.HeaderArtVariant = models.HeaderArtDiagonal

	require.NoError(t, svc.Update(context.Background(), session, edited))
	assert.Equal(t, "#004D40", session.Theme.PrimaryColor)
	assert.Equal(t, models.HeaderArtDiagonal, session.Theme.HeaderArtVariant)
	assert.Equal(t, 1, repo.saves)

	assert.Error(t, svc.Update(context.Background(), session, nil))
}

func TestThemeServiceSetActiveFormat(t *testing.T) {
	repo := &stubThemeRepo{}
	svc := NewThemeService(repo)
	session := NewSession()

	require.NoError(t, svc.SetActiveFormat(context.Background(), session, models.FormatPoster))
	assert.Equal(t, models.FormatPoster, session.Theme.ActiveFormatID)
	assert.Equal(t, models.FormatPoster, repo.theme.ActiveFormatID, "format switch must persist")

	err := svc.SetActiveFormat(context.Background(), session, "billboard")
	require.Error(t, err)
	assert.Equal(t, models.FormatPoster, session.Theme.ActiveFormatID, "invalid switch must not change the session")
}

func TestThemeServiceReset(t *testing.T) {
	repo := &stubThemeRepo{}
	svc := NewThemeService(repo)
	session := NewSession()
	session.Theme.PrimaryColor = "#000000"

	require.NoError(t, svc.Reset(context.Background(), session))
	assert.Equal(t, models.DefaultTheme().PrimaryColor, session.Theme.PrimaryColor)
	assert.Equal(t, 1, repo.saves)
}
