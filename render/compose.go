package render

import (
	"fmt"
	"image"
	"math"

	"oferta-studio/models"
)

// DefaultPreviewWidth is the tree-space canvas width the editor previews
// at. Export rescales the rasterized preview to the format's exact pixel
// dimensions, so this value never leaks into output resolution.
const DefaultPreviewWidth = 540

// Region proportions, expressed as fractions of canvas height.
const (
	headerFrac   = 0.17
	headerFracTV = 0.20
	footerFrac   = 0.08
)

// Options configures a composition pass.
type Options struct {
	// Width is the tree-space canvas width; zero means
	// DefaultPreviewWidth. Height follows from the format aspect ratio.
	Width int
	// Images maps asset URLs (product, header, logo) to pre-fetched
	// decoded images. A product URL absent from the map renders the
	// placeholder glyph, never a broken-image artifact.
	Images map[string]image.Image
}

func (o Options) image(url string) image.Image {
	if url == "" || o.Images == nil {
		return nil
	}
	return o.Images[url]
}

// Compose produces the layered render tree for (theme, products, format).
// Deterministic: the same inputs always yield the same tree; no hidden
// randomness or I/O. The caller is expected to have run the layout guard
// over the inputs, but a missing per-format entry still degrades to the
// neutral default rather than another format's entry.
func Compose(theme *models.Theme, products []models.Product, formatID string, opts Options) (*Node, error) {
	f, ok := models.FormatByID(formatID)
	if !ok {
		return nil, fmt.Errorf("unknown format id %q", formatID)
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultPreviewWidth
	}

	c := &composer{
		theme:  theme,
		format: f,
		opts:   opts,
		W:      float64(width),
	}
	c.H = math.Round(c.W * float64(f.PixelHeight) / float64(f.PixelWidth))
	c.s = c.W / float64(f.PixelWidth)
	c.products = products

	root := &Node{Kind: NodeGroup, ID: "canvas", W: c.W, H: c.H}
	root.Append(
		&Node{Kind: NodeRect, ID: "background", W: c.W, H: c.H, Fill: ParseHexColor(theme.BackgroundColor)},
		c.header(),
		c.body(),
		c.footer(),
	)
	if theme.FrameEnabled {
		root.Append(frameOverlay(theme, c.W, c.H))
	}
	return root, nil
}

type composer struct {
	theme    *models.Theme
	products []models.Product
	format   models.Format
	opts     Options

	W, H float64
	// s converts authoring-resolution pixels (the unit ElementTransform
	// offsets are stored in) to tree pixels.
	s float64
}

func (c *composer) headerHeight() float64 {
	if c.format.ID == models.FormatTV {
		return c.H * headerFracTV
	}
	return c.H * headerFrac
}

// headerLayout returns the per-format header/footer layout, degrading to
// the neutral default when the entry is missing.
func (c *composer) headerLayout() models.HeaderFooterLayout {
	if hl, ok := c.theme.HeaderElements[c.format.ID]; ok {
		return hl
	}
	return models.DefaultHeaderFooterLayout()
}

// productLayout returns the product's per-format layout, degrading to the
// neutral default when the entry is missing.
func (c *composer) productLayout(p *models.Product) models.ProductLayout {
	if pl, ok := p.Layouts[c.format.ID]; ok {
		return pl
	}
	return models.DefaultProductLayout()
}

// applyTransform offsets and scales a node per its stored transform.
// Offsets are authored in output pixels and converted to tree pixels here;
// scale composes multiplicatively around the node's box center.
func (c *composer) applyTransform(n *Node, t models.ElementTransform) *Node {
	n.X += t.OffsetX * c.s
	n.Y += t.OffsetY * c.s
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	n.Scale = n.EffectiveScale() * scale
	return n
}

// header assembles the header layer: art or image background, logo, title
// and subtitle. Exactly one of {geometric art, header image} is the
// visible background; they never render as equal-weight layers.
func (c *composer) header() *Node {
	t := c.theme
	hh := c.headerHeight()
	hl := c.headerLayout()

	group := &Node{Kind: NodeGroup, ID: "header", W: c.W, H: hh}

	headerImg := c.opts.image(t.HeaderImageURL)
	mode := t.HeaderImageMode
	if headerImg == nil {
		mode = models.HeaderImageNone
	}

	primary := ParseHexColor(t.PrimaryColor)
	secondary := ParseHexColor(t.SecondaryColor)

	showText := true
	switch mode {
	case models.HeaderImageHero:
		// The image replaces the art entirely; text survives only when
		// the variant explicitly allows overlay.
		group.Append(&Node{Kind: NodeImage, ID: "header.image", W: c.W, H: hh, Image: headerImg})
		showText = headerArtAllowsHeroText(t.HeaderArtVariant)
	case models.HeaderImageBackground:
		group.Append(&Node{Kind: NodeImage, ID: "header.image", W: c.W, H: hh, Image: headerImg})
		group.Append(headerArt(t.HeaderArtVariant, c.W, hh, primary, secondary, t.HeaderImageOpacity)...)
	default:
		group.Append(headerArt(t.HeaderArtVariant, c.W, hh, primary, secondary, 1)...)
	}

	if logo := c.logoNode(hh, mode); logo != nil {
		group.Append(logo)
	}

	if showText {
		if hl.TitleText != "" {
			title := &Node{
				Kind:       NodeText,
				ID:         "header.title",
				X:          c.W * 0.05,
				Y:          hh * 0.18,
				W:          c.W * 0.9,
				H:          hh * 0.42,
				Text:       hl.TitleText,
				FontFamily: t.TitleFont,
				FontSize:   c.W * 0.085,
				Bold:       true,
				Align:      AlignCenter,
				Fill:       ParseHexColor(t.HeaderTextColor),
				FitWidth:   c.W * 0.9,
			}
			group.Append(c.applyTransform(title, hl.HeaderTitle))
		}
		if hl.SubtitleText != "" {
			subtitle := &Node{
				Kind:       NodeText,
				ID:         "header.subtitle",
				X:          c.W * 0.05,
				Y:          hh * 0.58,
				W:          c.W * 0.9,
				H:          hh * 0.22,
				Text:       hl.SubtitleText,
				FontFamily: t.BodyFont,
				FontSize:   c.W * 0.035,
				Align:      AlignCenter,
				Fill:       ParseHexColor(t.HeaderTextColor),
				FitWidth:   c.W * 0.9,
			}
			group.Append(c.applyTransform(subtitle, hl.HeaderSubtitle))
		}
	}

	return group
}

// logoNode places the theme logo per the active art variant's contract.
// A hero header image suppresses the logo together with the art.
func (c *composer) logoNode(headerH float64, imageMode string) *Node {
	t := c.theme
	logoImg := c.opts.image(t.LogoURL)
	if logoImg == nil || imageMode == models.HeaderImageHero {
		return nil
	}

	pos := HeaderArtLogoPosition(t.HeaderArtVariant)
	if pos == LogoNone {
		return nil
	}

	size := c.W * 0.14
	n := &Node{Kind: NodeImage, ID: "header.logo", W: size, H: size, Image: logoImg}
	switch pos {
	case LogoLeft:
		n.X = c.W * 0.04
		n.Y = headerH*0.5 - size/2
	case LogoRight:
		n.X = c.W - size - c.W*0.04
		n.Y = headerH*0.5 - size/2
	case LogoTop:
		n.X = c.W/2 - size/2
		n.Y = headerH * 0.05
	}

	lt, ok := t.LogoLayouts[c.format.ID]
	if !ok {
		lt = models.DefaultElementTransform()
	}
	return c.applyTransform(n, lt)
}

// body dispatches between hero, slide and grid modes per the product
// count and active format, and renders the explicit empty state when the
// offer has no products.
func (c *composer) body() *Node {
	top := c.headerHeight()
	h := c.H - top - c.H*footerFrac
	group := &Node{Kind: NodeGroup, ID: "body", Y: top, W: c.W, H: h}

	switch {
	case len(c.products) == 0:
		group.Append(c.emptyState(top, h))
	case len(c.products) == 1 && c.format.ID == models.FormatTV:
		group.Append(c.slideBody(&c.products[0], top, h))
	case len(c.products) == 1:
		group.Append(c.heroBody(&c.products[0], top, h))
	default:
		group.Append(c.gridBody(top, h))
	}
	return group
}

// emptyState renders the zero-products placeholder, never a blank canvas.
func (c *composer) emptyState(top, h float64) *Node {
	boxW, boxH := c.W*0.7, h*0.32
	x := (c.W - boxW) / 2
	y := top + (h-boxH)/2
	group := &Node{Kind: NodeGroup, ID: "body.empty", X: x, Y: y, W: boxW, H: boxH}
	group.Append(
		&Node{
			Kind:        NodeRect,
			ID:          "body.empty.box",
			X:           x,
			Y:           y,
			W:           boxW,
			H:           boxH,
			Stroke:      MustHex("#BDBDBD"),
			StrokeWidth: 2,
			Dash:        []float64{8, 6},
			Radius:      c.W * 0.02,
		},
		&Node{
			Kind:       NodeText,
			ID:         "body.empty.text",
			X:          x,
			Y:          y + boxH*0.38,
			W:          boxW,
			H:          boxH * 0.24,
			Text:       "Adicione produtos à oferta",
			FontFamily: c.theme.BodyFont,
			FontSize:   c.W * 0.035,
			Align:      AlignCenter,
			Fill:       MustHex("#9E9E9E"),
			FitWidth:   boxW * 0.9,
		},
	)
	return group
}

// productImageNode returns the product image fitted into the given box,
// or the placeholder glyph when the product has no usable image.
func (c *composer) productImageNode(p *models.Product, id string, x, y, w, h float64) *Node {
	if img := c.opts.image(p.ImageURL); img != nil {
		return &Node{Kind: NodeImage, ID: id, X: x, Y: y, W: w, H: h, Image: img}
	}
	return placeholderGlyph(id, x, y, w, h)
}

// placeholderGlyph draws the no-image mark: a soft box with a mountain
//-and-sun picture glyph.
func placeholderGlyph(id string, x, y, w, h float64) *Node {
	group := &Node{Kind: NodeGroup, ID: id, X: x, Y: y, W: w, H: h}
	inset := math.Min(w, h) * 0.18
	gx, gy := x+inset, y+inset
	gw, gh := w-2*inset, h-2*inset
	group.Append(
		&Node{Kind: NodeRect, ID: id + ".box", X: x, Y: y, W: w, H: h, Fill: MustHex("#EEEEEE"), Radius: math.Min(w, h) * 0.06},
		&Node{Kind: NodePath, ID: id + ".mountains", Fill: MustHex("#BDBDBD"), Ops: []PathOp{
			{Op: OpMove, X1: gx, Y1: gy + gh},
			{Op: OpLine, X1: gx + gw*0.38, Y1: gy + gh*0.35},
			{Op: OpLine, X1: gx + gw*0.62, Y1: gy + gh*0.75},
			{Op: OpLine, X1: gx + gw*0.78, Y1: gy + gh*0.5},
			{Op: OpLine, X1: gx + gw, Y1: gy + gh},
			{Op: OpClose},
		}},
		&Node{Kind: NodePath, ID: id + ".sun", Fill: MustHex("#BDBDBD"), Ops: circleOps(gx+gw*0.78, gy+gh*0.22, math.Min(gw, gh)*0.1)},
	)
	return group
}
