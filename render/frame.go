package render

import "oferta-studio/models"

// frameOverlay draws the optional inset border. Thickness is stored in
// viewport-relative units (percent of canvas width) so the frame weight
// is consistent across preview and export resolutions.
func frameOverlay(t *models.Theme, w, h float64) *Node {
	thickness := t.FrameThickness / 100 * w
	if thickness <= 0 {
		thickness = 0.012 * w
	}
	inset := thickness*0.5 + w*0.015
	c := ParseHexColor(t.PrimaryColor)

	group := &Node{Kind: NodeGroup, ID: "frame", W: w, H: h}

	border := func(id string, in, tw float64) *Node {
		return &Node{
			Kind:        NodeRect,
			ID:          id,
			X:           in,
			Y:           in,
			W:           w - 2*in,
			H:           h - 2*in,
			Stroke:      c,
			StrokeWidth: tw,
		}
	}

	switch t.FrameStyle {
	case models.FrameDashed:
		n := border("frame.border", inset, thickness)
		n.Dash = []float64{thickness * 2.4, thickness * 1.6}
		group.Append(n)
	case models.FrameRounded:
		n := border("frame.border", inset, thickness)
		n.Radius = w * 0.035
		group.Append(n)
	case models.FrameDouble:
		group.Append(
			border("frame.outer", inset, thickness*0.6),
			border("frame.inner", inset+thickness*2, thickness*0.35),
		)
	default:
		group.Append(border("frame.border", inset, thickness))
	}
	return group
}
