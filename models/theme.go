package models

import "time"

// Header image modes. Exactly one of {geometric art, header image} is the
// visible header background at any time.
const (
	HeaderImageNone       = "none"
	HeaderImageBackground = "background"
	HeaderImageHero       = "hero"
)

// Header-art variant ids. Each variant defines a background shape and a
// logo-placement contract (see render package).
const (
	HeaderArtFlat     = "flat"
	HeaderArtDiagonal = "diagonal"
	HeaderArtWave     = "wave"
	HeaderArtPeak     = "peak"
	HeaderArtArc      = "arc"
	HeaderArtStepped  = "stepped"
	HeaderArtBrush    = "brush"
	HeaderArtCircles  = "circles"
)

// Frame overlay styles.
const (
	FrameSolid   = "solid"
	FrameDashed  = "dashed"
	FrameRounded = "rounded"
	FrameDouble  = "double"
)

// Price card styles.
const (
	PriceCardBurst = "burst"
	PriceCardTag   = "tag"
	PriceCardPlain = "plain"
)

// Theme is the single reusable visual identity applied to every format.
// Global fields are format-independent; the maps at the bottom are keyed
// by format id and must contain an entry for every registered format
// before the theme is handed to the renderer (guaranteed by
// layout.EnsureTheme).
type Theme struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	HeaderTextColor string `json:"headerTextColor"`

	TitleFont string `json:"titleFont"`
	BodyFont  string `json:"bodyFont"`

	HeaderArtVariant   string  `json:"headerArtVariant"`
	HeaderImageURL     string  `json:"headerImageUrl,omitempty"`
	HeaderImageMode    string  `json:"headerImageMode"`
	HeaderImageOpacity float64 `json:"headerImageOpacity"`

	PriceCardStyle string `json:"priceCardStyle"`

	FrameEnabled   bool    `json:"frameEnabled"`
	FrameStyle     string  `json:"frameStyle"`
	FrameThickness float64 `json:"frameThickness"` // viewport-relative units (% of canvas width)

	// Fine-tune offsets for the unit-of-measure text next to the price.
	UnitOffsetX float64 `json:"unitOffsetX"`
	UnitOffsetY float64 `json:"unitOffsetY"`
	UnitScale   float64 `json:"unitScale"`

	FooterQRText string `json:"footerQrText,omitempty"`
	LogoURL      string `json:"logoUrl,omitempty"`

	ActiveFormatID string `json:"activeFormatId"`

	LayoutCols     map[string]int                `json:"layoutCols"`
	HeaderElements map[string]HeaderFooterLayout `json:"headerElements"`
	LogoLayouts    map[string]ElementTransform   `json:"logoLayouts"`

	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// defaultLayoutCols holds the grid column count each format starts with.
var defaultLayoutCols = map[string]int{
	FormatStory:  2,
	FormatFeed:   2,
	FormatA4:     3,
	FormatPoster: 4,
	FormatTV:     4,
}

// DefaultLayoutCols returns the default grid column count for a format.
func DefaultLayoutCols(formatID string) int {
	if cols, ok := defaultLayoutCols[formatID]; ok {
		return cols
	}
	return 3
}

// DefaultTheme returns a fully-populated theme with an entry for every
// registered format. Used as the substitute when a persisted theme is
// structurally unrecognizable.
func DefaultTheme() *Theme {
	t := &Theme{
		Name:               "Oferta",
		PrimaryColor:       "#E53935",
		SecondaryColor:     "#FFC107",
		BackgroundColor:    "#FFFFFF",
		TextColor:          "#212121",
		HeaderTextColor:    "#FFFFFF",
		TitleFont:          "Anton",
		BodyFont:           "Roboto",
		HeaderArtVariant:   HeaderArtWave,
		HeaderImageMode:    HeaderImageNone,
		HeaderImageOpacity: 0.85,
		PriceCardStyle:     PriceCardBurst,
		FrameStyle:         FrameSolid,
		FrameThickness:     1.2,
		UnitScale:          1,
		ActiveFormatID:     DefaultFormatID,
		LayoutCols:         map[string]int{},
		HeaderElements:     map[string]HeaderFooterLayout{},
		LogoLayouts:        map[string]ElementTransform{},
	}
	for _, id := range FormatIDs() {
		t.LayoutCols[id] = DefaultLayoutCols(id)
		t.HeaderElements[id] = DefaultHeaderFooterLayout()
		t.LogoLayouts[id] = DefaultElementTransform()
	}
	return t
}

// Clone returns a deep copy of the theme. Export snapshots clone the live
// theme so later edits cannot retroactively alter captured output.
func (t *Theme) Clone() *Theme {
	if t == nil {
		return nil
	}
	out := *t
	out.LayoutCols = make(map[string]int, len(t.LayoutCols))
	for k, v := range t.LayoutCols {
		out.LayoutCols[k] = v
	}
	out.HeaderElements = make(map[string]HeaderFooterLayout, len(t.HeaderElements))
	for k, v := range t.HeaderElements {
		out.HeaderElements[k] = v
	}
	out.LogoLayouts = make(map[string]ElementTransform, len(t.LogoLayouts))
	for k, v := range t.LogoLayouts {
		out.LogoLayouts[k] = v
	}
	return &out
}
