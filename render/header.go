package render

import (
	"image/color"
	"math"

	"oferta-studio/models"
)

// LogoPosition is the content-placement contract a header-art variant
// declares for the theme logo.
type LogoPosition int

const (
	LogoNone LogoPosition = iota
	LogoLeft
	LogoRight
	LogoTop
)

// kappa is the circle-to-cubic approximation constant.
const kappa = 0.5522847498

// headerArtLogoPos maps each art variant to its logo contract.
var headerArtLogoPos = map[string]LogoPosition{
	models.HeaderArtFlat:     LogoLeft,
	models.HeaderArtDiagonal: LogoRight,
	models.HeaderArtWave:     LogoLeft,
	models.HeaderArtPeak:     LogoTop,
	models.HeaderArtArc:      LogoTop,
	models.HeaderArtStepped:  LogoRight,
	models.HeaderArtBrush:    LogoLeft,
	models.HeaderArtCircles:  LogoNone,
}

// HeaderArtLogoPosition returns the logo contract for a variant.
func HeaderArtLogoPosition(variant string) LogoPosition {
	if pos, ok := headerArtLogoPos[variant]; ok {
		return pos
	}
	return LogoLeft
}

// headerArtAllowsHeroText reports whether header text stays visible when a
// hero header image replaces the art. Only the flat block keeps its text;
// every other variant's art is the text backdrop.
func headerArtAllowsHeroText(variant string) bool {
	return variant == models.HeaderArtFlat
}

// headerArt builds the decorative background nodes for a variant inside
// the (0,0,w,h) header region. alpha applies to the art fill (used when a
// background header image sits underneath).
func headerArt(variant string, w, h float64, primary, secondary color.RGBA, alpha float64) []*Node {
	fill := WithAlpha(primary, alpha)
	accent := WithAlpha(secondary, alpha)

	path := func(id string, c color.RGBA, ops []PathOp) *Node {
		return &Node{Kind: NodePath, ID: id, W: w, H: h, Fill: c, Ops: ops}
	}

	switch variant {
	case models.HeaderArtDiagonal:
		return []*Node{path("header.art", fill, []PathOp{
			{Op: OpMove, X1: 0, Y1: 0},
			{Op: OpLine, X1: w, Y1: 0},
			{Op: OpLine, X1: w, Y1: h * 0.72},
			{Op: OpLine, X1: 0, Y1: h},
			{Op: OpClose},
		})}

	case models.HeaderArtWave:
		return []*Node{path("header.art", fill, []PathOp{
			{Op: OpMove, X1: 0, Y1: 0},
			{Op: OpLine, X1: w, Y1: 0},
			{Op: OpLine, X1: w, Y1: h * 0.78},
			{Op: OpQuad, X1: w * 0.75, Y1: h * 1.02, X2: w * 0.5, Y2: h * 0.84},
			{Op: OpQuad, X1: w * 0.25, Y1: h * 0.66, X2: 0, Y2: h * 0.9},
			{Op: OpClose},
		})}

	case models.HeaderArtPeak:
		return []*Node{path("header.art", fill, []PathOp{
			{Op: OpMove, X1: 0, Y1: 0},
			{Op: OpLine, X1: w, Y1: 0},
			{Op: OpLine, X1: w, Y1: h * 0.7},
			{Op: OpLine, X1: w * 0.5, Y1: h},
			{Op: OpLine, X1: 0, Y1: h * 0.7},
			{Op: OpClose},
		})}

	case models.HeaderArtArc:
		return []*Node{path("header.art", fill, []PathOp{
			{Op: OpMove, X1: 0, Y1: 0},
			{Op: OpLine, X1: w, Y1: 0},
			{Op: OpLine, X1: w, Y1: h * 0.7},
			{Op: OpQuad, X1: w * 0.5, Y1: h * 1.15, X2: 0, Y2: h * 0.7},
			{Op: OpClose},
		})}

	case models.HeaderArtStepped:
		steps := 4
		ops := []PathOp{
			{Op: OpMove, X1: 0, Y1: 0},
			{Op: OpLine, X1: w, Y1: 0},
			{Op: OpLine, X1: w, Y1: h},
		}
		// Staircase from right to left along the bottom edge.
		stepW := w / float64(steps)
		stepH := h * 0.3 / float64(steps)
		for i := 0; i < steps; i++ {
			x := w - float64(i+1)*stepW
			y := h - float64(i)*stepH
			ops = append(ops,
				PathOp{Op: OpLine, X1: x, Y1: y},
				PathOp{Op: OpLine, X1: x, Y1: y - stepH},
			)
		}
		ops = append(ops, PathOp{Op: OpClose})
		return []*Node{path("header.art", fill, ops)}

	case models.HeaderArtBrush:
		// Irregular brush-mask bottom edge; fixed offsets so the stroke
		// pattern is stable across renders.
		offsets := []float64{0.92, 0.78, 0.95, 0.72, 0.9, 0.68, 0.96, 0.8}
		ops := []PathOp{
			{Op: OpMove, X1: 0, Y1: 0},
			{Op: OpLine, X1: w, Y1: 0},
			{Op: OpLine, X1: w, Y1: h * offsets[len(offsets)-1]},
		}
		n := len(offsets)
		for i := n - 2; i >= 0; i-- {
			x := w * float64(i+1) / float64(n)
			ops = append(ops, PathOp{Op: OpLine, X1: x, Y1: h * offsets[i]})
		}
		ops = append(ops, PathOp{Op: OpLine, X1: 0, Y1: h * 0.85}, PathOp{Op: OpClose})
		return []*Node{path("header.art", fill, ops)}

	case models.HeaderArtCircles:
		nodes := []*Node{path("header.art", fill, rectOps(0, 0, w, h*0.82))}
		// Concentric accent rings anchored on the right edge.
		cx, cy := w*0.88, h*0.45
		for i, r := range []float64{h * 0.52, h * 0.38, h * 0.24} {
			ring := &Node{
				Kind:        NodePath,
				ID:          "header.art.ring",
				W:           w,
				H:           h,
				Stroke:      accent,
				StrokeWidth: h * 0.035,
				Ops:         circleOps(cx, cy, r),
			}
			if i == 2 {
				ring.Fill = accent
				ring.Stroke = nil
			}
			nodes = append(nodes, ring)
		}
		return nodes

	default: // flat block
		return []*Node{path("header.art", fill, rectOps(0, 0, w, h*0.85))}
	}
}

// rectOps returns the path ops for an axis-aligned rectangle.
func rectOps(x, y, w, h float64) []PathOp {
	return []PathOp{
		{Op: OpMove, X1: x, Y1: y},
		{Op: OpLine, X1: x + w, Y1: y},
		{Op: OpLine, X1: x + w, Y1: y + h},
		{Op: OpLine, X1: x, Y1: y + h},
		{Op: OpClose},
	}
}

// circleOps approximates a circle with four cubic segments.
func circleOps(cx, cy, r float64) []PathOp {
	k := r * kappa
	return []PathOp{
		{Op: OpMove, X1: cx + r, Y1: cy},
		{Op: OpCubic, X1: cx + r, Y1: cy + k, X2: cx + k, Y2: cy + r, X3: cx, Y3: cy + r},
		{Op: OpCubic, X1: cx - k, Y1: cy + r, X2: cx - r, Y2: cy + k, X3: cx - r, Y3: cy},
		{Op: OpCubic, X1: cx - r, Y1: cy - k, X2: cx - k, Y2: cy - r, X3: cx, Y3: cy - r},
		{Op: OpCubic, X1: cx + k, Y1: cy - r, X2: cx + r, Y2: cy - k, X3: cx + r, Y3: cy},
		{Op: OpClose},
	}
}

// starburstOps returns a points-count starburst centered at (cx, cy) used
// by the burst price-card style.
func starburstOps(cx, cy, outer, inner float64, points int) []PathOp {
	ops := make([]PathOp, 0, points*2+2)
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i) * math.Pi / float64(points)
		x := cx + r*math.Cos(a)
		y := cy + r*math.Sin(a)
		if i == 0 {
			ops = append(ops, PathOp{Op: OpMove, X1: x, Y1: y})
		} else {
			ops = append(ops, PathOp{Op: OpLine, X1: x, Y1: y})
		}
	}
	return append(ops, PathOp{Op: OpClose})
}
