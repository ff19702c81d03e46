package models

// ElementTransform is an offset+scale adjustment applied to a visual
// element relative to its default anchored position. Offsets are in output
// pixels at authoring resolution; scale is multiplicative (1.0 = authored
// size) and is applied around the element's natural anchor point after the
// translation.
type ElementTransform struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Scale   float64 `json:"scale"`
}

// DefaultElementTransform returns the neutral transform.
func DefaultElementTransform() ElementTransform {
	return ElementTransform{OffsetX: 0, OffsetY: 0, Scale: 1}
}

// ProductLayout holds the per-format transforms for the four visual
// elements of a product composition. One instance exists per format id.
type ProductLayout struct {
	Image       ElementTransform `json:"image"`
	Name        ElementTransform `json:"name"`
	Price       ElementTransform `json:"price"`
	Description ElementTransform `json:"description"`
}

// DefaultProductLayout returns a layout with every element at its neutral
// transform.
func DefaultProductLayout() ProductLayout {
	return ProductLayout{
		Image:       DefaultElementTransform(),
		Name:        DefaultElementTransform(),
		Price:       DefaultElementTransform(),
		Description: DefaultElementTransform(),
	}
}

// HeaderFooterLayout holds the per-format transforms and text content for
// the theme-level header/footer elements.
type HeaderFooterLayout struct {
	HeaderTitle    ElementTransform `json:"headerTitle"`
	HeaderSubtitle ElementTransform `json:"headerSubtitle"`
	FooterText     ElementTransform `json:"footerText"`
	TitleText      string           `json:"titleText"`
	SubtitleText   string           `json:"subtitleText"`
	FooterContent  string           `json:"footerContent"`
}

// DefaultHeaderFooterLayout returns a header/footer layout with neutral
// transforms and empty text.
func DefaultHeaderFooterLayout() HeaderFooterLayout {
	return HeaderFooterLayout{
		HeaderTitle:    DefaultElementTransform(),
		HeaderSubtitle: DefaultElementTransform(),
		FooterText:     DefaultElementTransform(),
	}
}
