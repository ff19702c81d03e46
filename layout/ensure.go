// Package layout guards the per-format layout structure of persisted
// themes and products. Records written before the multi-format editor
// existed carry flat, single-canvas layout shapes; everything loaded from
// storage passes through here before it may reach the renderer.
package layout

import (
	"encoding/json"
	"errors"
	"fmt"

	"oferta-studio/models"
)

// ErrInvalidEntityShape marks a persisted theme/product that is
// structurally unrecognizable (not an object, or a layout map that mixes
// element keys with format ids). Callers recover by substituting a
// brand-new default entity; partial data is never rendered.
var ErrInvalidEntityShape = errors.New("invalid entity shape")

// productElementKeys are the reserved keys of a legacy flat ProductLayout.
var productElementKeys = map[string]bool{
	"image":       true,
	"name":        true,
	"price":       true,
	"description": true,
}

// headerElementKeys are the reserved keys of a legacy flat
// HeaderFooterLayout.
var headerElementKeys = map[string]bool{
	"headerTitle":    true,
	"headerSubtitle": true,
	"footerText":     true,
	"titleText":      true,
	"subtitleText":   true,
	"footerContent":  true,
}

// ensureTransform normalizes a transform loaded from storage. Records
// written before the scale field existed carry a zero scale, which means
// "authored size".
func ensureTransform(t models.ElementTransform) models.ElementTransform {
	if t.Scale == 0 {
		t.Scale = 1
	}
	return t
}

// EnsureProduct guarantees the product has a layout entry for every
// registered format, synthesizing neutral defaults for missing ones.
// Idempotent: applying it twice yields the same result as applying it
// once. Must run before the product is handed to the renderer.
func EnsureProduct(p *models.Product) *models.Product {
	if p.Layouts == nil {
		p.Layouts = make(map[string]models.ProductLayout, len(models.FormatIDs()))
	}
	for k := range p.Layouts {
		if !models.IsFormatID(k) {
			delete(p.Layouts, k)
		}
	}
	for _, id := range models.FormatIDs() {
		l, ok := p.Layouts[id]
		if !ok {
			l = models.DefaultProductLayout()
		}
		l.Image = ensureTransform(l.Image)
		l.Name = ensureTransform(l.Name)
		l.Price = ensureTransform(l.Price)
		l.Description = ensureTransform(l.Description)
		p.Layouts[id] = l
	}
	if p.Unit == "" {
		p.Unit = "un"
	}
	return p
}

// EnsureTheme guarantees every per-format map on the theme has an entry
// for every registered format, and clamps global fields to valid values.
// The active format id always exists as a key in every map afterwards.
// Idempotent.
func EnsureTheme(t *models.Theme) *models.Theme {
	if t.LayoutCols == nil {
		t.LayoutCols = make(map[string]int)
	}
	if t.HeaderElements == nil {
		t.HeaderElements = make(map[string]models.HeaderFooterLayout)
	}
	if t.LogoLayouts == nil {
		t.LogoLayouts = make(map[string]models.ElementTransform)
	}
	for k := range t.LayoutCols {
		if !models.IsFormatID(k) {
			delete(t.LayoutCols, k)
		}
	}
	for k := range t.HeaderElements {
		if !models.IsFormatID(k) {
			delete(t.HeaderElements, k)
		}
	}
	for k := range t.LogoLayouts {
		if !models.IsFormatID(k) {
			delete(t.LogoLayouts, k)
		}
	}

	for _, id := range models.FormatIDs() {
		if cols, ok := t.LayoutCols[id]; !ok || cols < 1 {
			t.LayoutCols[id] = models.DefaultLayoutCols(id)
		}
		he, ok := t.HeaderElements[id]
		if !ok {
			he = models.DefaultHeaderFooterLayout()
		}
		he.HeaderTitle = ensureTransform(he.HeaderTitle)
		he.HeaderSubtitle = ensureTransform(he.HeaderSubtitle)
		he.FooterText = ensureTransform(he.FooterText)
		t.HeaderElements[id] = he

		t.LogoLayouts[id] = ensureTransform(t.LogoLayouts[id])
	}

	if !models.IsFormatID(t.ActiveFormatID) {
		t.ActiveFormatID = models.DefaultFormatID
	}
	switch t.HeaderImageMode {
	case models.HeaderImageNone, models.HeaderImageBackground, models.HeaderImageHero:
	default:
		t.HeaderImageMode = models.HeaderImageNone
	}
	switch t.HeaderArtVariant {
	case models.HeaderArtFlat, models.HeaderArtDiagonal, models.HeaderArtWave,
		models.HeaderArtPeak, models.HeaderArtArc, models.HeaderArtStepped,
		models.HeaderArtBrush, models.HeaderArtCircles:
	default:
		t.HeaderArtVariant = models.HeaderArtWave
	}
	switch t.FrameStyle {
	case models.FrameSolid, models.FrameDashed, models.FrameRounded, models.FrameDouble:
	default:
		t.FrameStyle = models.FrameSolid
	}
	switch t.PriceCardStyle {
	case models.PriceCardBurst, models.PriceCardTag, models.PriceCardPlain:
	default:
		t.PriceCardStyle = models.PriceCardBurst
	}
	if t.HeaderImageOpacity <= 0 {
		t.HeaderImageOpacity = 0.85
	} else if t.HeaderImageOpacity > 1 {
		t.HeaderImageOpacity = 1
	}
	if t.UnitScale <= 0 {
		t.UnitScale = 1
	}
	if t.FrameThickness < 0 {
		t.FrameThickness = 0
	}
	return t
}

// ProductFromJSON decodes a persisted product, upgrading legacy flat
// layout shapes into the per-format map shape, and runs EnsureProduct.
// Returns ErrInvalidEntityShape when the record is structurally
// unrecognizable.
func ProductFromJSON(raw []byte) (*models.Product, error) {
	var doc struct {
		ID             string          `json:"id"`
		Name           string          `json:"name"`
		Description    string          `json:"description"`
		Price          string          `json:"price"`
		OldPrice       string          `json:"oldPrice"`
		Unit           string          `json:"unit"`
		WholesalePrice string          `json:"wholesalePrice"`
		WholesaleUnit  string          `json:"wholesaleUnit"`
		ImageURL       string          `json:"image"`
		Layouts        json.RawMessage `json:"layouts"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntityShape, err)
	}

	layouts, err := upgradeProductLayouts(doc.Layouts)
	if err != nil {
		return nil, err
	}

	p := &models.Product{
		ID:             doc.ID,
		Name:           doc.Name,
		Description:    doc.Description,
		Price:          doc.Price,
		OldPrice:       doc.OldPrice,
		Unit:           doc.Unit,
		WholesalePrice: doc.WholesalePrice,
		WholesaleUnit:  doc.WholesaleUnit,
		ImageURL:       doc.ImageURL,
		Layouts:        layouts,
	}
	return EnsureProduct(p), nil
}

// upgradeProductLayouts interprets the raw layouts value. Three shapes are
// recognized: absent/null, the current per-format map, and the legacy flat
// ProductLayout. A flat layout predates the format registry and migrates
// to the default format only; other formats start from pristine defaults
// so no canvas ever inherits another canvas's tuning.
func upgradeProductLayouts(raw json.RawMessage) (map[string]models.ProductLayout, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]models.ProductLayout{}, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: layouts is not an object", ErrInvalidEntityShape)
	}

	flat, perFormat := 0, 0
	for k := range keys {
		switch {
		case productElementKeys[k]:
			flat++
		case models.IsFormatID(k):
			perFormat++
		}
	}
	if flat > 0 && perFormat > 0 {
		return nil, fmt.Errorf("%w: layouts mixes element keys with format ids", ErrInvalidEntityShape)
	}

	if flat > 0 {
		var legacy models.ProductLayout
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEntityShape, err)
		}
		return map[string]models.ProductLayout{models.DefaultFormatID: legacy}, nil
	}

	var m map[string]models.ProductLayout
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntityShape, err)
	}
	return m, nil
}

// ThemeFromJSON decodes a persisted theme, upgrading legacy flat header
// and logo layout shapes, and runs EnsureTheme. Returns
// ErrInvalidEntityShape when the record is structurally unrecognizable.
func ThemeFromJSON(raw []byte) (*models.Theme, error) {
	var doc struct {
		models.Theme
		LayoutCols     json.RawMessage `json:"layoutCols"`
		HeaderElements json.RawMessage `json:"headerElements"`
		LogoLayouts    json.RawMessage `json:"logoLayouts"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntityShape, err)
	}

	t := doc.Theme

	cols, err := upgradeLayoutCols(doc.LayoutCols)
	if err != nil {
		return nil, err
	}
	t.LayoutCols = cols

	headers, err := upgradeHeaderElements(doc.HeaderElements)
	if err != nil {
		return nil, err
	}
	t.HeaderElements = headers

	logos, err := upgradeLogoLayouts(doc.LogoLayouts)
	if err != nil {
		return nil, err
	}
	t.LogoLayouts = logos

	return EnsureTheme(&t), nil
}

// upgradeLayoutCols accepts either the current map shape or a legacy bare
// number (the single-canvas column count), which migrates to the default
// format.
func upgradeLayoutCols(raw json.RawMessage) (map[string]int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]int{}, nil
	}
	var m map[string]int
	if err := json.Unmarshal(raw, &m); err == nil {
		return m, nil
	}
	var single int
	if err := json.Unmarshal(raw, &single); err == nil {
		return map[string]int{models.DefaultFormatID: single}, nil
	}
	return nil, fmt.Errorf("%w: layoutCols is neither a map nor a number", ErrInvalidEntityShape)
}

func upgradeHeaderElements(raw json.RawMessage) (map[string]models.HeaderFooterLayout, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]models.HeaderFooterLayout{}, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: headerElements is not an object", ErrInvalidEntityShape)
	}

	flat, perFormat := 0, 0
	for k := range keys {
		switch {
		case headerElementKeys[k]:
			flat++
		case models.IsFormatID(k):
			perFormat++
		}
	}
	if flat > 0 && perFormat > 0 {
		return nil, fmt.Errorf("%w: headerElements mixes element keys with format ids", ErrInvalidEntityShape)
	}

	if flat > 0 {
		var legacy models.HeaderFooterLayout
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEntityShape, err)
		}
		return map[string]models.HeaderFooterLayout{models.DefaultFormatID: legacy}, nil
	}

	var m map[string]models.HeaderFooterLayout
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntityShape, err)
	}
	return m, nil
}

func upgradeLogoLayouts(raw json.RawMessage) (map[string]models.ElementTransform, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]models.ElementTransform{}, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: logoLayouts is not an object", ErrInvalidEntityShape)
	}

	// Legacy flat logo layout: {scale, offsetX, offsetY} at the top level.
	flatKeys := map[string]bool{"scale": true, "offsetX": true, "offsetY": true}
	flat, perFormat := 0, 0
	for k := range keys {
		switch {
		case flatKeys[k]:
			flat++
		case models.IsFormatID(k):
			perFormat++
		}
	}
	if flat > 0 && perFormat > 0 {
		return nil, fmt.Errorf("%w: logoLayouts mixes transform keys with format ids", ErrInvalidEntityShape)
	}

	if flat > 0 {
		var legacy models.ElementTransform
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEntityShape, err)
		}
		return map[string]models.ElementTransform{models.DefaultFormatID: legacy}, nil
	}

	var m map[string]models.ElementTransform
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntityShape, err)
	}
	return m, nil
}
