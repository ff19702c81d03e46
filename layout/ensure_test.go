package layout

import (
	"errors"
	"reflect"
	"testing"

	"oferta-studio/models"
)

func TestEnsureProduct(t *testing.T) {
	t.Run("fills every format", func(t *testing.T) {
		p := &models.Product{Name: "Arroz", Price: "19.90"}
		EnsureProduct(p)

		for _, id := range models.FormatIDs() {
			l, ok := p.Layouts[id]
			if !ok {
				t.Fatalf("missing layout entry for format %s", id)
			}
			for name, tr := range map[string]models.ElementTransform{
				"image": l.Image, "name": l.Name, "price": l.Price, "description": l.Description,
			} {
				if tr.Scale != 1 {
					t.Errorf("format %s element %s: scale = %v, want 1", id, name, tr.Scale)
				}
			}
		}
		if p.Unit != "un" {
			t.Errorf("unit = %q, want default un", p.Unit)
		}
	})

	t.Run("zero scale upgrades to 1", func(t *testing.T) {
		p := &models.Product{
			Name:  "Feijão",
			Price: "8.49",
			Layouts: map[string]models.ProductLayout{
				models.FormatStory: {Image: models.ElementTransform{OffsetX: 10}},
			},
		}
		EnsureProduct(p)

		got := p.Layouts[models.FormatStory].Image
		if got.Scale != 1 || got.OffsetX != 10 {
			t.Errorf("story image transform = %+v, want offsetX 10 scale 1", got)
		}
	})

	t.Run("drops non-format keys", func(t *testing.T) {
		p := &models.Product{
			Name:  "Leite",
			Price: "5.99",
			Layouts: map[string]models.ProductLayout{
				"banner": {},
			},
		}
		EnsureProduct(p)
		if _, ok := p.Layouts["banner"]; ok {
			t.Error("unknown key banner survived EnsureProduct")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		p := &models.Product{Name: "Café", Price: "14.90"}
		EnsureProduct(p)
		before := p.Clone()
		EnsureProduct(p)
		if !reflect.DeepEqual(before.Layouts, p.Layouts) {
			t.Error("second EnsureProduct changed the layouts")
		}
	})
}

func TestEnsureTheme(t *testing.T) {
	t.Run("fills every format map", func(t *testing.T) {
		th := &models.Theme{}
		EnsureTheme(th)

		for _, id := range models.FormatIDs() {
			if cols := th.LayoutCols[id]; cols != models.DefaultLayoutCols(id) {
				t.Errorf("format %s cols = %d, want %d", id, cols, models.DefaultLayoutCols(id))
			}
			if _, ok := th.HeaderElements[id]; !ok {
				t.Errorf("missing header elements for %s", id)
			}
			if tr := th.LogoLayouts[id]; tr.Scale != 1 {
				t.Errorf("format %s logo scale = %v, want 1", id, tr.Scale)
			}
		}
	})

	t.Run("clamps invalid fields", func(t *testing.T) {
		th := &models.Theme{
			ActiveFormatID:     "billboard",
			HeaderArtVariant:   "zigzag",
			HeaderImageMode:    "overlay",
			FrameStyle:         "neon",
			PriceCardStyle:     "ribbon",
			HeaderImageOpacity: 3,
			FrameThickness:     -2,
		}
		EnsureTheme(th)

		if th.ActiveFormatID != models.DefaultFormatID {
			t.Errorf("active format = %q, want %q", th.ActiveFormatID, models.DefaultFormatID)
		}
		if th.HeaderArtVariant != models.HeaderArtWave {
			t.Errorf("art variant = %q, want wave", th.HeaderArtVariant)
		}
		if th.HeaderImageMode != models.HeaderImageNone {
			t.Errorf("image mode = %q, want none", th.HeaderImageMode)
		}
		if th.HeaderImageOpacity != 1 {
			t.Errorf("opacity = %v, want clamp to 1", th.HeaderImageOpacity)
		}
		if th.UnitScale != 1 {
			t.Errorf("unit scale = %v, want 1", th.UnitScale)
		}
		if th.FrameThickness != 0 {
			t.Errorf("frame thickness = %v, want 0", th.FrameThickness)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		th := models.DefaultTheme()
		EnsureTheme(th)
		before := th.Clone()
		EnsureTheme(th)
		if !reflect.DeepEqual(before, th) {
			t.Error("second EnsureTheme changed the theme")
		}
	})
}

func TestProductFromJSON(t *testing.T) {
	t.Run("legacy flat layout migrates to default format only", func(t *testing.T) {
		raw := []byte(`{
			"name": "Tomate",
			"price": "7.99",
			"layouts": {
				"image": {"offsetX": 12, "offsetY": -4, "scale": 1.3},
				"price": {"scale": 0.9}
			}
		}`)
		p, err := ProductFromJSON(raw)
		if err != nil {
			t.Fatalf("ProductFromJSON: %v", err)
		}

		story := p.Layouts[models.DefaultFormatID]
		if story.Image.OffsetX != 12 || story.Image.Scale != 1.3 {
			t.Errorf("default-format image transform = %+v, want migrated values", story.Image)
		}
		if story.Price.Scale != 0.9 {
			t.Errorf("default-format price scale = %v, want 0.9", story.Price.Scale)
		}

		// Other formats start pristine, never inheriting the flat tuning.
		for _, id := range models.FormatIDs() {
			if id == models.DefaultFormatID {
				continue
			}
			if got := p.Layouts[id].Image; got.OffsetX != 0 || got.Scale != 1 {
				t.Errorf("format %s inherited flat tuning: %+v", id, got)
			}
		}
	})

	t.Run("per-format layout passes through", func(t *testing.T) {
		raw := []byte(`{
			"name": "Banana",
			"price": "3.49",
			"layouts": {
				"feed": {"name": {"offsetY": 8, "scale": 1.1}}
			}
		}`)
		p, err := ProductFromJSON(raw)
		if err != nil {
			t.Fatalf("ProductFromJSON: %v", err)
		}
		if got := p.Layouts[models.FormatFeed].Name; got.OffsetY != 8 || got.Scale != 1.1 {
			t.Errorf("feed name transform = %+v", got)
		}
	})

	t.Run("mixed keys are invalid", func(t *testing.T) {
		raw := []byte(`{
			"name": "Uva",
			"price": "9.99",
			"layouts": {
				"image": {"scale": 1.2},
				"story": {"name": {"scale": 1}}
			}
		}`)
		_, err := ProductFromJSON(raw)
		if !errors.Is(err, ErrInvalidEntityShape) {
			t.Fatalf("err = %v, want ErrInvalidEntityShape", err)
		}
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := ProductFromJSON([]byte(`[1,2,3]`))
		if !errors.Is(err, ErrInvalidEntityShape) {
			t.Fatalf("err = %v, want ErrInvalidEntityShape", err)
		}
	})
}

func TestThemeFromJSON(t *testing.T) {
	t.Run("legacy shapes migrate to default format", func(t *testing.T) {
		raw := []byte(`{
			"primaryColor": "#0D47A1",
			"layoutCols": 3,
			"headerElements": {"titleText": "OFERTÃO", "headerTitle": {"offsetY": -6}},
			"logoLayouts": {"scale": 1.4, "offsetX": 20}
		}`)
		th, err := ThemeFromJSON(raw)
		if err != nil {
			t.Fatalf("ThemeFromJSON: %v", err)
		}

		if th.LayoutCols[models.DefaultFormatID] != 3 {
			t.Errorf("default-format cols = %d, want 3", th.LayoutCols[models.DefaultFormatID])
		}
		he := th.HeaderElements[models.DefaultFormatID]
		if he.TitleText != "OFERTÃO" || he.HeaderTitle.OffsetY != -6 {
			t.Errorf("default-format header = %+v", he)
		}
		logo := th.LogoLayouts[models.DefaultFormatID]
		if logo.Scale != 1.4 || logo.OffsetX != 20 {
			t.Errorf("default-format logo = %+v", logo)
		}

		// Non-default formats get defaults, not the migrated values.
		if th.LayoutCols[models.FormatA4] != models.DefaultLayoutCols(models.FormatA4) {
			t.Errorf("a4 cols inherited the flat value")
		}
		if th.HeaderElements[models.FormatFeed].TitleText != "" {
			t.Errorf("feed header inherited the flat title")
		}
	})

	t.Run("mixed header keys are invalid", func(t *testing.T) {
		raw := []byte(`{
			"headerElements": {"titleText": "X", "story": {"titleText": "Y"}}
		}`)
		_, err := ThemeFromJSON(raw)
		if !errors.Is(err, ErrInvalidEntityShape) {
			t.Fatalf("err = %v, want ErrInvalidEntityShape", err)
		}
	})

	t.Run("round trip is stable", func(t *testing.T) {
		raw := []byte(`{"layoutCols": {"story": 2, "feed": 3}}`)
		th, err := ThemeFromJSON(raw)
		if err != nil {
			t.Fatalf("ThemeFromJSON: %v", err)
		}
		if th.LayoutCols[models.FormatFeed] != 3 {
			t.Errorf("feed cols = %d, want 3", th.LayoutCols[models.FormatFeed])
		}
		if th.LayoutCols[models.FormatStory] != 2 {
			t.Errorf("story cols = %d, want 2", th.LayoutCols[models.FormatStory])
		}
	})
}
