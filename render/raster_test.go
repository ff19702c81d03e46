package render

import (
	"image/color"
	"testing"
)

func testRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	// Point the library at a directory with no TTFs so every family
	// resolves to the built-in face and the test needs no font assets.
	return NewRasterizer(NewFontLibrary(t.TempDir()))
}

func TestRasterizerMeasure(t *testing.T) {
	r := testRasterizer(t)

	w, h := r.MeasureString("inter", 24, false, "Oferta da semana")
	if w <= 0 || h <= 0 {
		t.Fatalf("MeasureString = (%v, %v), want positive dimensions", w, h)
	}

	short, _ := r.MeasureString("inter", 24, false, "Oferta")
	if short >= w {
		t.Errorf("shorter text measured %v, want less than %v", short, w)
	}

	wrapped := r.MeasureWrapped("inter", 24, false, 1.2, 40, "Oferta da semana no hortifruti")
	single := r.MeasureWrapped("inter", 24, false, 1.2, 10000, "Oferta da semana no hortifruti")
	if wrapped <= single {
		t.Errorf("wrapped height %v, want more than single-line %v", wrapped, single)
	}
}

func TestRasterizerDrawFillsCanvas(t *testing.T) {
	r := testRasterizer(t)
	red := color.RGBA{R: 0xe5, G: 0x3e, B: 0x3e, A: 0xff}
	root := &Node{
		Kind: NodeGroup,
		Children: []*Node{
			{Kind: NodeRect, X: 0, Y: 0, W: 100, H: 100, Fill: red},
			{Kind: NodeText, X: 10, Y: 40, W: 80, Text: "R$ 9,90", FontSize: 14, Fill: color.White},
		},
	}

	img := r.Draw(root, 100, 100)
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Fatalf("canvas = %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	got := color.RGBAModel.Convert(img.At(2, 2)).(color.RGBA)
	if got != red {
		t.Errorf("corner pixel = %v, want fill %v", got, red)
	}
}

func TestRasterizerDrawNilNode(t *testing.T) {
	r := testRasterizer(t)
	img := r.Draw(nil, 10, 10)
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Fatalf("canvas = %v, want 10x10", img.Bounds())
	}
}
