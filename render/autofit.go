package render

import "math"

// Auto-fit tuning. These values match previously-approved visual output;
// do not re-derive them.
const (
	// AutoFitShrinkStep is the per-iteration font-size decrement, as a
	// fraction of the base size.
	AutoFitShrinkStep = 0.05
	// AutoFitFloorScale is the hard shrink floor: a text element's font
	// never drops below this fraction of its base size.
	AutoFitFloorScale = 0.5
	// AutoFitWidthSafety is the margin applied when downscaling a block
	// to its container width.
	AutoFitWidthSafety = 0.97
	// AutoFitMaxIterations bounds the shrink loop on pathological input.
	AutoFitMaxIterations = 24
)

// Measurer provides real text metrics for the fit pass. Composition is
// environment-independent; fitting is not, so it runs against the same
// font stack that will rasterize the tree.
type Measurer interface {
	// MeasureString returns the rendered width and height of a single
	// text line.
	MeasureString(family string, size float64, bold bool, text string) (w, h float64)
	// MeasureWrapped returns the rendered height of text word-wrapped to
	// the given width.
	MeasureWrapped(family string, size float64, bold bool, lineSpacing, width float64, text string) (h float64)
}

// AutoFit runs the post-layout fit pass over the tree in place:
// height-fitted text shrinks in fixed decrements down to the floor, and
// width-fitted nodes get a uniform downscale instead of clipping. The
// pass is idempotent and converges in a bounded number of steps; nodes
// still overflowing at the floor are returned by id (residual overflow is
// accepted and clipped by the container, never looped on).
func AutoFit(root *Node, m Measurer) (nonConverged []string) {
	if root == nil || m == nil {
		return nil
	}
	root.Walk(func(n *Node) {
		if n.Kind == NodeText && n.FitHeight > 0 && n.Text != "" {
			if !fitTextHeight(n, m) {
				nonConverged = append(nonConverged, n.ID)
			}
		}
		if n.FitWidth > 0 {
			fitWidth(n, m)
		}
	})
	return nonConverged
}

// fitTextHeight shrinks n.FontSize until the rendered height fits
// n.FitHeight. Size decreases monotonically and iterations are capped, so
// termination is structural. Returns false when the floor was hit with
// residual overflow.
func fitTextHeight(n *Node, m Measurer) bool {
	if n.BaseFontSize == 0 {
		n.BaseFontSize = n.FontSize
	}
	base := n.BaseFontSize
	floor := base * AutoFitFloorScale
	step := base * AutoFitShrinkStep

	for i := 0; i < AutoFitMaxIterations; i++ {
		if textHeight(n, m) <= n.FitHeight {
			return true
		}
		if n.FontSize-step < floor {
			n.FontSize = floor
			return textHeight(n, m) <= n.FitHeight
		}
		n.FontSize -= step
	}
	return textHeight(n, m) <= n.FitHeight
}

func textHeight(n *Node, m Measurer) float64 {
	if n.Wrap {
		spacing := n.LineSpacing
		if spacing == 0 {
			spacing = 1
		}
		return m.MeasureWrapped(n.FontFamily, n.FontSize, n.Bold, spacing, n.W, n.Text)
	}
	_, h := m.MeasureString(n.FontFamily, n.FontSize, n.Bold, n.Text)
	return h
}

// fitWidth applies the uniform block downscale
// containerWidth/contentWidth*safety when the content overflows. The
// assignment caps the scale absolutely (it never stacks on re-runs), which
// keeps the pass idempotent.
func fitWidth(n *Node, m Measurer) {
	content := contentWidth(n, m)
	if content <= 0 {
		return
	}
	if content*n.EffectiveScale() <= n.FitWidth {
		return
	}
	n.Scale = math.Min(n.EffectiveScale(), n.FitWidth/content*AutoFitWidthSafety)
}

// contentWidth measures the natural (unscaled) width of the node's
// content: the text line for a text node, the widest measured text child
// for a group.
func contentWidth(n *Node, m Measurer) float64 {
	switch n.Kind {
	case NodeText:
		if n.Wrap || n.Text == "" {
			return 0
		}
		w, _ := m.MeasureString(n.FontFamily, n.FontSize, n.Bold, n.Text)
		return w
	case NodeGroup:
		widest := 0.0
		for _, c := range n.Children {
			if c.Kind != NodeText || c.Wrap || c.Text == "" {
				continue
			}
			w, _ := m.MeasureString(c.FontFamily, c.FontSize, c.Bold, c.Text)
			if w > widest {
				widest = w
			}
		}
		return widest
	}
	return 0
}
