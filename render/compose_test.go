package render

import (
	"image"
	"strings"
	"testing"

	"oferta-studio/layout"
	"oferta-studio/models"
)

func testTheme() *models.Theme {
	return layout.EnsureTheme(models.DefaultTheme())
}

func testProduct(name string) models.Product {
	p := models.DefaultProduct()
	p.Name = name
	p.Price = "4.99"
	return *layout.EnsureProduct(p)
}

func TestComposeUnknownFormat(t *testing.T) {
	_, err := Compose(testTheme(), nil, "billboard", Options{})
	if err == nil {
		t.Fatal("expected error for unknown format id")
	}
}

func TestComposeCanvasDimensions(t *testing.T) {
	for _, f := range models.Formats() {
		t.Run(f.ID, func(t *testing.T) {
			tree, err := Compose(testTheme(), nil, f.ID, Options{Width: 540})
			if err != nil {
				t.Fatalf("Compose: %v", err)
			}
			if tree.W != 540 {
				t.Errorf("canvas width = %v, want 540", tree.W)
			}
			wantH := float64(int(540*float64(f.PixelHeight)/float64(f.PixelWidth) + 0.5))
			if tree.H != wantH {
				t.Errorf("canvas height = %v, want %v", tree.H, wantH)
			}
		})
	}
}

func TestComposeBodyModes(t *testing.T) {
	t.Run("zero products renders empty state", func(t *testing.T) {
		tree, err := Compose(testTheme(), nil, models.FormatStory, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if tree.FindByID("body.empty") == nil {
			t.Error("missing body.empty node")
		}
		if tree.FindByID("body.empty.text") == nil {
			t.Error("missing empty-state text")
		}
	})

	t.Run("one product renders hero", func(t *testing.T) {
		tree, err := Compose(testTheme(), []models.Product{testProduct("Arroz")}, models.FormatStory, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if tree.FindByID("body.hero") == nil {
			t.Error("expected hero body for a single product")
		}
		if tree.FindByID("body.grid") != nil {
			t.Error("grid body rendered for a single product")
		}
	})

	t.Run("one product on tv renders slide", func(t *testing.T) {
		tree, err := Compose(testTheme(), []models.Product{testProduct("Arroz")}, models.FormatTV, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if tree.FindByID("body.slide") == nil {
			t.Error("expected two-column slide body on tv")
		}
		if tree.FindByID("body.hero") != nil {
			t.Error("hero body rendered on tv")
		}
	})

	t.Run("several products render grid with one cell each", func(t *testing.T) {
		products := []models.Product{testProduct("Arroz"), testProduct("Feijão"), testProduct("Café")}
		tree, err := Compose(testTheme(), products, models.FormatFeed, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		grid := tree.FindByID("body.grid")
		if grid == nil {
			t.Fatal("missing grid body")
		}
		if len(grid.Children) != len(products) {
			t.Errorf("grid cells = %d, want %d", len(grid.Children), len(products))
		}
	})
}

func TestComposePlaceholderGlyph(t *testing.T) {
	p := testProduct("Sem Foto")
	tree, err := Compose(testTheme(), []models.Product{p}, models.FormatStory, Options{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if tree.FindByID("hero.image.box") == nil {
		t.Error("missing placeholder for product without image")
	}

	p.ImageURL = "http://example.test/arroz.png"
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tree, err = Compose(testTheme(), []models.Product{p}, models.FormatStory, Options{
		Images: map[string]image.Image{p.ImageURL: img},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	node := tree.FindByID("hero.image")
	if node == nil || node.Image == nil {
		t.Error("prefetched product image not used")
	}
	if tree.FindByID("hero.image.box") != nil {
		t.Error("placeholder rendered despite a usable image")
	}
}

func TestComposeDiscountBadge(t *testing.T) {
	t.Run("badge when old price is higher", func(t *testing.T) {
		p := testProduct("Azeite")
		p.Price = "4.99"
		p.OldPrice = "6.50"
		tree, err := Compose(testTheme(), []models.Product{p}, models.FormatStory, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		badge := tree.FindByID("hero.price.badge.text")
		if badge == nil {
			t.Fatal("missing discount badge")
		}
		if badge.Text != "-23%" {
			t.Errorf("badge text = %q, want -23%%", badge.Text)
		}
		old := tree.FindByID("hero.price.old")
		if old == nil || !old.Strike {
			t.Error("old price missing or not struck through")
		}
	})

	t.Run("no badge when old price is lower or equal", func(t *testing.T) {
		p := testProduct("Azeite")
		p.Price = "6.50"
		p.OldPrice = "6.50"
		tree, err := Compose(testTheme(), []models.Product{p}, models.FormatStory, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if tree.FindByID("hero.price.badge") != nil {
			t.Error("badge rendered without a positive discount")
		}
	})
}

func TestComposePriceFormatting(t *testing.T) {
	t.Run("burst card splits units and centavos", func(t *testing.T) {
		p := testProduct("Banana")
		p.Price = "3.5"
		theme := testTheme()
		theme.PriceCardStyle = models.PriceCardBurst
		tree, err := Compose(theme, []models.Product{p}, models.FormatStory, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		units := tree.FindByID("hero.price.current.units")
		cents := tree.FindByID("hero.price.current.cents")
		if units == nil || cents == nil {
			t.Fatal("missing split price nodes")
		}
		if units.Text != "3" {
			t.Errorf("units text = %q, want 3", units.Text)
		}
		if cents.Text != "50" {
			t.Errorf("cents text = %q, want 50 (two fraction digits)", cents.Text)
		}
		if cents.FontSize >= units.FontSize {
			t.Errorf("cents size %v not smaller than units size %v", cents.FontSize, units.FontSize)
		}
	})

	t.Run("plain card keeps the full price line", func(t *testing.T) {
		p := testProduct("Banana")
		p.Price = "3.5"
		theme := testTheme()
		theme.PriceCardStyle = models.PriceCardPlain
		tree, err := Compose(theme, []models.Product{p}, models.FormatStory, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		current := tree.FindByID("hero.price.current")
		if current == nil {
			t.Fatal("missing current price node")
		}
		if current.Text != "R$ 3,50" {
			t.Errorf("price text = %q, want R$ 3,50 (two fraction digits)", current.Text)
		}
	})
}

func TestComposeWholesaleBlock(t *testing.T) {
	t.Run("present only with both price and unit", func(t *testing.T) {
		p := testProduct("Batata")
		p.WholesalePrice = "2.99"
		p.WholesaleUnit = "kg"
		tree, err := Compose(testTheme(), []models.Product{p}, models.FormatStory, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		w := tree.FindByID("hero.price.wholesale")
		if w == nil {
			t.Fatal("missing wholesale block")
		}
		if !strings.Contains(w.Text, "2,99") || !strings.Contains(w.Text, "/kg") {
			t.Errorf("wholesale text = %q", w.Text)
		}
	})

	t.Run("absent without the unit", func(t *testing.T) {
		p := testProduct("Batata")
		p.WholesalePrice = "2.99"
		tree, err := Compose(testTheme(), []models.Product{p}, models.FormatStory, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if tree.FindByID("hero.price.wholesale") != nil {
			t.Error("wholesale block rendered without a wholesale unit")
		}
	})
}

func TestComposeHeaderModes(t *testing.T) {
	headerImg := image.NewRGBA(image.Rect(0, 0, 8, 8))

	t.Run("none mode renders art and text", func(t *testing.T) {
		th := testTheme()
		he := th.HeaderElements[models.FormatStory]
		he.TitleText = "OFERTA DA SEMANA"
		th.HeaderElements[models.FormatStory] = he

		tree, err := Compose(th, nil, models.FormatStory, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if tree.FindByID("header.title") == nil {
			t.Error("missing header title")
		}
		if tree.FindByID("header.image") != nil {
			t.Error("header image rendered without a URL")
		}
	})

	t.Run("hero image suppresses art and text", func(t *testing.T) {
		th := testTheme()
		th.HeaderImageURL = "http://example.test/header.png"
		th.HeaderImageMode = models.HeaderImageHero
		th.HeaderArtVariant = models.HeaderArtWave
		he := th.HeaderElements[models.FormatStory]
		he.TitleText = "OFERTA"
		th.HeaderElements[models.FormatStory] = he

		tree, err := Compose(th, nil, models.FormatStory, Options{
			Images: map[string]image.Image{th.HeaderImageURL: headerImg},
		})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if tree.FindByID("header.image") == nil {
			t.Fatal("missing hero header image")
		}
		if tree.FindByID("header.title") != nil {
			t.Error("title rendered over a hero image on a non-flat variant")
		}
	})

	t.Run("flat variant keeps text over a hero image", func(t *testing.T) {
		th := testTheme()
		th.HeaderImageURL = "http://example.test/header.png"
		th.HeaderImageMode = models.HeaderImageHero
		th.HeaderArtVariant = models.HeaderArtFlat
		he := th.HeaderElements[models.FormatStory]
		he.TitleText = "OFERTA"
		th.HeaderElements[models.FormatStory] = he

		tree, err := Compose(th, nil, models.FormatStory, Options{
			Images: map[string]image.Image{th.HeaderImageURL: headerImg},
		})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if tree.FindByID("header.title") == nil {
			t.Error("flat variant should keep hero text")
		}
	})

	t.Run("missing image degrades to none mode", func(t *testing.T) {
		th := testTheme()
		th.HeaderImageURL = "http://example.test/header.png"
		th.HeaderImageMode = models.HeaderImageBackground

		tree, err := Compose(th, nil, models.FormatStory, Options{})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if tree.FindByID("header.image") != nil {
			t.Error("header image node rendered without prefetched pixels")
		}
	})
}

func TestComposeLogoContract(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, 8, 8))

	t.Run("circles variant suppresses the logo", func(t *testing.T) {
		th := testTheme()
		th.LogoURL = "http://example.test/logo.png"
		th.HeaderArtVariant = models.HeaderArtCircles

		tree, err := Compose(th, nil, models.FormatStory, Options{
			Images: map[string]image.Image{th.LogoURL: logo},
		})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if tree.FindByID("header.logo") != nil {
			t.Error("circles variant placed a logo")
		}
	})

	t.Run("diagonal variant places the logo right of center", func(t *testing.T) {
		th := testTheme()
		th.LogoURL = "http://example.test/logo.png"
		th.HeaderArtVariant = models.HeaderArtDiagonal

		tree, err := Compose(th, nil, models.FormatStory, Options{
			Images: map[string]image.Image{th.LogoURL: logo},
		})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		node := tree.FindByID("header.logo")
		if node == nil {
			t.Fatal("diagonal variant should place a logo")
		}
		if node.X <= tree.W/2 {
			t.Errorf("logo x = %v, want right of center (%v)", node.X, tree.W/2)
		}
	})
}

func TestComposeFrameOverlay(t *testing.T) {
	th := testTheme()
	th.FrameEnabled = true
	th.FrameStyle = models.FrameDashed

	tree, err := Compose(th, nil, models.FormatStory, Options{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	frame := tree.FindByID("frame")
	if frame == nil {
		t.Fatal("missing frame overlay")
	}

	th.FrameEnabled = false
	tree, err = Compose(th, nil, models.FormatStory, Options{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if tree.FindByID("frame") != nil {
		t.Error("frame rendered while disabled")
	}
}

func TestComposeDeterministic(t *testing.T) {
	th := testTheme()
	products := []models.Product{testProduct("Arroz"), testProduct("Feijão")}

	a, err := Compose(th, products, models.FormatA4, Options{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	b, err := Compose(th, products, models.FormatA4, Options{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	var idsA, idsB []string
	a.Walk(func(n *Node) { idsA = append(idsA, n.ID) })
	b.Walk(func(n *Node) { idsB = append(idsB, n.ID) })
	if len(idsA) != len(idsB) {
		t.Fatalf("node counts differ: %d vs %d", len(idsA), len(idsB))
	}
	for i := range idsA {
		if idsA[i] != idsB[i] {
			t.Fatalf("tree order differs at %d: %q vs %q", i, idsA[i], idsB[i])
		}
	}
}
