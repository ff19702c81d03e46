package render

import (
	"math"
	"testing"
)

// stubMeasurer gives deterministic metrics so fit behavior can be
// asserted exactly: width is 0.6·size per character, a line is 1.2·size
// tall, and wrapped height is ceil(naturalWidth/width) lines.
type stubMeasurer struct{}

func (stubMeasurer) MeasureString(_ string, size float64, _ bool, text string) (float64, float64) {
	return float64(len(text)) * size * 0.6, size * 1.2
}

func (stubMeasurer) MeasureWrapped(_ string, size float64, _ bool, lineSpacing, width float64, text string) float64 {
	natural := float64(len(text)) * size * 0.6
	if natural <= 0 || width <= 0 {
		return 0
	}
	lines := math.Ceil(natural / width)
	return lines * size * 1.2 * lineSpacing
}

func TestAutoFitNilSafe(t *testing.T) {
	if got := AutoFit(nil, stubMeasurer{}); got != nil {
		t.Errorf("AutoFit(nil, m) = %v, want nil", got)
	}
	root := &Node{Kind: NodeText, Text: "x", FontSize: 10, FitHeight: 5}
	if got := AutoFit(root, nil); got != nil {
		t.Errorf("AutoFit(root, nil) = %v, want nil", got)
	}
	if root.FontSize != 10 {
		t.Errorf("nil measurer mutated FontSize to %v", root.FontSize)
	}
}

func TestAutoFitHeightWrapped(t *testing.T) {
	// 50 chars at size 40 over a 200-wide box: 6 lines, 288 tall.
	// Shrinking in steps of 2 reaches size 32 (5 lines, 192 tall).
	n := &Node{
		Kind:        NodeText,
		ID:          "desc",
		Text:        "01234567890123456789012345678901234567890123456789",
		Wrap:        true,
		W:           200,
		FontSize:    40,
		LineSpacing: 1,
		FitHeight:   200,
	}
	if len(n.Text) != 50 {
		t.Fatalf("test text length = %d, want 50", len(n.Text))
	}

	nonConverged := AutoFit(n, stubMeasurer{})
	if len(nonConverged) != 0 {
		t.Fatalf("nonConverged = %v, want empty", nonConverged)
	}
	if math.Abs(n.FontSize-32) > 1e-9 {
		t.Errorf("FontSize = %v, want 32", n.FontSize)
	}
}

func TestAutoFitHeightSingleLine(t *testing.T) {
	// Line height is 1.2·size, so fitting 36 from a base of 40 lands on
	// size 30 after five 2-point steps.
	n := &Node{Kind: NodeText, ID: "title", Text: "OFERTA", FontSize: 40, FitHeight: 36}

	if got := AutoFit(n, stubMeasurer{}); len(got) != 0 {
		t.Fatalf("nonConverged = %v, want empty", got)
	}
	if math.Abs(n.FontSize-30) > 1e-9 {
		t.Errorf("FontSize = %v, want 30", n.FontSize)
	}
}

func TestAutoFitHeightNoShrinkWhenFits(t *testing.T) {
	n := &Node{Kind: NodeText, ID: "ok", Text: "x", FontSize: 20, FitHeight: 100}
	AutoFit(n, stubMeasurer{})
	if n.FontSize != 20 {
		t.Errorf("FontSize = %v, want unchanged 20", n.FontSize)
	}
}

func TestAutoFitHeightFloorClamp(t *testing.T) {
	// FitHeight of 10 is unreachable: even the 0.5× floor renders at
	// 24 tall. The node clamps to the floor and is reported.
	n := &Node{Kind: NodeText, ID: "badge.text", Text: "-99%", FontSize: 40, FitHeight: 10}

	nonConverged := AutoFit(n, stubMeasurer{})
	if len(nonConverged) != 1 || nonConverged[0] != "badge.text" {
		t.Fatalf("nonConverged = %v, want [badge.text]", nonConverged)
	}
	floor := 40 * AutoFitFloorScale
	if math.Abs(n.FontSize-floor) > 1e-9 {
		t.Errorf("FontSize = %v, want floor %v", n.FontSize, floor)
	}
}

func TestAutoFitWidthScalesDown(t *testing.T) {
	// "PRECO" at size 100 measures 300 wide; a 150 cap yields a
	// 0.5·0.97 downscale.
	n := &Node{Kind: NodeText, ID: "price", Text: "PRECO", FontSize: 100, FitWidth: 150}

	AutoFit(n, stubMeasurer{})
	want := 150.0 / 300.0 * AutoFitWidthSafety
	if math.Abs(n.EffectiveScale()-want) > 1e-9 {
		t.Errorf("scale = %v, want %v", n.EffectiveScale(), want)
	}
	if n.FontSize != 100 {
		t.Errorf("width fit changed FontSize to %v", n.FontSize)
	}
}

func TestAutoFitWidthLeavesFittingContent(t *testing.T) {
	n := &Node{Kind: NodeText, ID: "price", Text: "R$ 1", FontSize: 20, FitWidth: 500}
	AutoFit(n, stubMeasurer{})
	if n.EffectiveScale() != 1 {
		t.Errorf("scale = %v, want 1 for content inside the cap", n.EffectiveScale())
	}
}

func TestAutoFitWidthGroupUsesWidestChild(t *testing.T) {
	group := &Node{
		Kind:     NodeGroup,
		ID:       "price.block",
		FitWidth: 120,
		Children: []*Node{
			{Kind: NodeText, Text: "R$", FontSize: 40},
			{Kind: NodeText, Text: "1.234,56", FontSize: 40}, // 8 chars → 192 wide
			{Kind: NodeText, Text: "wrapped text ignored", FontSize: 40, Wrap: true},
		},
	}

	AutoFit(group, stubMeasurer{})
	want := 120.0 / 192.0 * AutoFitWidthSafety
	if math.Abs(group.EffectiveScale()-want) > 1e-9 {
		t.Errorf("scale = %v, want %v", group.EffectiveScale(), want)
	}
}

func TestAutoFitIdempotent(t *testing.T) {
	n := &Node{
		Kind: NodeGroup,
		ID:   "root",
		Children: []*Node{
			{Kind: NodeText, ID: "a", Text: "PRECO", FontSize: 100, FitWidth: 150},
			{Kind: NodeText, ID: "b", Text: "OFERTA", FontSize: 40, FitHeight: 36},
			// Unreachable FitHeight: clamps to the 0.5× floor without
			// converging and must stay there on re-runs.
			{Kind: NodeText, ID: "c", Text: "-99%", FontSize: 40, FitHeight: 10},
		},
	}

	AutoFit(n, stubMeasurer{})
	scaleA := n.Children[0].EffectiveScale()
	sizeB := n.Children[1].FontSize

	nonConverged := AutoFit(n, stubMeasurer{})
	if n.Children[0].EffectiveScale() != scaleA {
		t.Errorf("second pass changed scale %v → %v", scaleA, n.Children[0].EffectiveScale())
	}
	if n.Children[1].FontSize != sizeB {
		t.Errorf("second pass changed FontSize %v → %v", sizeB, n.Children[1].FontSize)
	}

	floor := 40 * AutoFitFloorScale
	if n.Children[2].FontSize != floor {
		t.Errorf("second pass moved a floor-clamped node to %v, want floor %v", n.Children[2].FontSize, floor)
	}
	if len(nonConverged) != 1 || nonConverged[0] != "c" {
		t.Errorf("second pass nonConverged = %v, want [c]", nonConverged)
	}

	AutoFit(n, stubMeasurer{})
	if n.Children[2].FontSize != floor {
		t.Errorf("third pass moved a floor-clamped node to %v, want floor %v", n.Children[2].FontSize, floor)
	}
}
