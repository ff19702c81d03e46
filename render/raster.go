package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Rasterizer draws a composed tree into a bitmap and doubles as the
// Measurer the auto-fit pass runs against, so fit decisions use the same
// font stack that paints the pixels.
type Rasterizer struct {
	fonts *FontLibrary

	mu      sync.Mutex
	scratch *gg.Context
}

// NewRasterizer creates a rasterizer over the given font library.
func NewRasterizer(fonts *FontLibrary) *Rasterizer {
	return &Rasterizer{
		fonts:   fonts,
		scratch: gg.NewContext(1, 1),
	}
}

var _ Measurer = (*Rasterizer)(nil)

// MeasureString implements Measurer.
func (r *Rasterizer) MeasureString(family string, size float64, bold bool, text string) (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scratch.SetFontFace(r.fonts.Face(family, size, bold))
	return r.scratch.MeasureString(text)
}

// MeasureWrapped implements Measurer: height of text word-wrapped to
// width at the given line spacing.
func (r *Rasterizer) MeasureWrapped(family string, size float64, bold bool, lineSpacing, width float64, text string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scratch.SetFontFace(r.fonts.Face(family, size, bold))
	lines := r.scratch.WordWrap(text, width)
	if len(lines) == 0 {
		return 0
	}
	_, lineH := r.scratch.MeasureString(lines[0])
	return lineH * lineSpacing * float64(len(lines))
}

// Draw rasterizes the tree onto a w×h canvas.
func (r *Rasterizer) Draw(root *Node, w, h int) image.Image {
	dc := gg.NewContext(w, h)
	r.drawNode(dc, root)
	return dc.Image()
}

func (r *Rasterizer) drawNode(dc *gg.Context, n *Node) {
	if n == nil {
		return
	}

	scale := n.EffectiveScale()
	if scale != 1 {
		dc.Push()
		dc.ScaleAbout(scale, scale, n.X+n.W/2, n.Y+n.H/2)
	}

	switch n.Kind {
	case NodeRect:
		r.drawRect(dc, n)
	case NodePath:
		r.drawPath(dc, n)
	case NodeText:
		r.drawText(dc, n)
	case NodeImage:
		r.drawImage(dc, n)
	}

	for _, c := range n.Children {
		r.drawNode(dc, c)
	}

	if scale != 1 {
		dc.Pop()
	}
}

func (r *Rasterizer) drawRect(dc *gg.Context, n *Node) {
	trace := func() {
		if n.Radius > 0 {
			dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, n.Radius)
		} else {
			dc.DrawRectangle(n.X, n.Y, n.W, n.H)
		}
	}

	if n.Fill != nil {
		trace()
		dc.SetColor(n.Fill)
		dc.Fill()
	}
	if n.Stroke != nil && n.StrokeWidth > 0 {
		trace()
		dc.SetColor(n.Stroke)
		dc.SetLineWidth(n.StrokeWidth)
		if len(n.Dash) > 0 {
			dc.SetDash(n.Dash...)
		}
		dc.Stroke()
		dc.SetDash()
	}
}

func (r *Rasterizer) drawPath(dc *gg.Context, n *Node) {
	dc.NewSubPath()
	for _, op := range n.Ops {
		switch op.Op {
		case OpMove:
			dc.MoveTo(op.X1, op.Y1)
		case OpLine:
			dc.LineTo(op.X1, op.Y1)
		case OpQuad:
			dc.QuadraticTo(op.X1, op.Y1, op.X2, op.Y2)
		case OpCubic:
			dc.CubicTo(op.X1, op.Y1, op.X2, op.Y2, op.X3, op.Y3)
		case OpClose:
			dc.ClosePath()
		}
	}

	if n.Fill != nil {
		dc.SetColor(n.Fill)
		if n.Stroke != nil && n.StrokeWidth > 0 {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if n.Stroke != nil && n.StrokeWidth > 0 {
		dc.SetColor(n.Stroke)
		dc.SetLineWidth(n.StrokeWidth)
		dc.Stroke()
	}
}

func (r *Rasterizer) drawText(dc *gg.Context, n *Node) {
	if n.Text == "" {
		return
	}
	dc.SetFontFace(r.fonts.Face(n.FontFamily, n.FontSize, n.Bold))
	if n.Fill != nil {
		dc.SetColor(n.Fill)
	} else {
		dc.SetColor(color.Black)
	}

	if n.Wrap {
		spacing := n.LineSpacing
		if spacing == 0 {
			spacing = 1
		}
		align := gg.AlignLeft
		switch n.Align {
		case AlignCenter:
			align = gg.AlignCenter
		case AlignRight:
			align = gg.AlignRight
		}
		dc.DrawStringWrapped(n.Text, n.X, n.Y, 0, 0, n.W, spacing, align)
		return
	}

	ax := 0.0
	x := n.X
	switch n.Align {
	case AlignCenter:
		ax = 0.5
		x = n.X + n.W/2
	case AlignRight:
		ax = 1
		x = n.X + n.W
	}
	y := n.Y + n.H/2
	if n.H == 0 {
		y = n.Y + n.FontSize/2
	}
	dc.DrawStringAnchored(n.Text, x, y, ax, 0.5)

	if n.Strike {
		tw, _ := dc.MeasureString(n.Text)
		var sx float64
		switch n.Align {
		case AlignCenter:
			sx = x - tw/2
		case AlignRight:
			sx = x - tw
		default:
			sx = x
		}
		dc.SetLineWidth(n.FontSize * 0.08)
		dc.DrawLine(sx, y, sx+tw, y)
		dc.Stroke()
	}
}

func (r *Rasterizer) drawImage(dc *gg.Context, n *Node) {
	if n.Image == nil || n.W <= 0 || n.H <= 0 {
		return
	}
	fitted := imaging.Fit(n.Image, int(n.W+0.5), int(n.H+0.5), imaging.Lanczos)
	if opacity := n.EffectiveOpacity(); opacity < 1 {
		fitted = fadeImage(fitted, opacity)
	}
	dc.DrawImageAnchored(fitted, int(n.X+n.W/2), int(n.Y+n.H/2), 0.5, 0.5)
}

// fadeImage returns the image with a uniform alpha applied.
func fadeImage(src *image.NRGBA, opacity float64) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(out, out.Bounds(), src, src.Bounds().Min, mask, image.Point{}, draw.Over)
	return out
}
