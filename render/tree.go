// Package render turns a theme and product list into a layered visual
// tree and rasterizes it. Composition is a pure function of its inputs;
// all I/O (image fetch, font files) happens before or after it.
package render

import (
	"image"
	"image/color"
)

// NodeKind discriminates the node payload.
type NodeKind int

const (
	NodeGroup NodeKind = iota
	NodeRect
	NodeText
	NodeImage
	NodePath
)

// Align is the horizontal text alignment within a node's box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Path op codes. Coordinates are in tree space.
const (
	OpMove  = 'M'
	OpLine  = 'L'
	OpQuad  = 'Q'
	OpCubic = 'C'
	OpClose = 'Z'
)

// PathOp is one segment of a NodePath outline. Quad uses (X1,Y1) as the
// control point and (X2,Y2) as the endpoint; Cubic uses (X1,Y1) and
// (X2,Y2) as controls and (X3,Y3) as the endpoint.
type PathOp struct {
	Op byte
	X1, Y1 float64
	X2, Y2 float64
	X3, Y3 float64
}

// Node is one element of the layered render tree. (X, Y, W, H) is the
// node's box in tree coordinates; Scale is a uniform factor applied about
// the box center (zero means 1). The auto-fit engine mutates FontSize and
// Scale in place after composition.
type Node struct {
	Kind NodeKind
	ID   string

	X, Y, W, H float64
	Scale      float64

	// Text payload.
	Text        string
	FontFamily  string
	FontSize    float64
	Bold        bool
	LineSpacing float64
	Align       Align
	Wrap        bool
	// FitHeight clamps the rendered text height: the auto-fit engine
	// shrinks FontSize until the text fits, down to its floor. Zero
	// disables height fitting.
	FitHeight float64
	// BaseFontSize is the composed font size before any fit shrink. The
	// fit pass records it on first touch; the shrink floor is derived
	// from it so re-runs never re-base on an already shrunk size.
	BaseFontSize float64
	// FitWidth caps the content width: overflow is resolved by a uniform
	// downscale of the node, never by clipping. Zero disables it.
	FitWidth float64
	// Strike draws a strikethrough line over the text (old prices).
	Strike bool

	// Paint.
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
	Dash        []float64
	Radius      float64
	Opacity     float64 // 0 means fully opaque

	// Image payload.
	Image image.Image

	// Path payload.
	Ops []PathOp

	Children []*Node
}

// EffectiveScale returns the node scale with the zero-value default
// applied.
func (n *Node) EffectiveScale() float64 {
	if n.Scale == 0 {
		return 1
	}
	return n.Scale
}

// EffectiveOpacity returns the node opacity with the zero-value default
// applied.
func (n *Node) EffectiveOpacity() float64 {
	if n.Opacity == 0 {
		return 1
	}
	return n.Opacity
}

// Walk visits n and every descendant in depth-first order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindByID returns the first node (depth-first) whose ID matches, or nil.
func (n *Node) FindByID(id string) *Node {
	var found *Node
	n.Walk(func(m *Node) {
		if found == nil && m.ID == id {
			found = m
		}
	})
	return found
}

// Append adds children and returns n for chaining during composition.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}
