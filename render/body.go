package render

import (
	"fmt"
	"math"

	"oferta-studio/models"
)

// heroBody lays out the single-product composition: image upper-mid, name
// mid, description below it, price card lower-mid. Each element is an
// independent full-canvas element adjusted by its own transform.
func (c *composer) heroBody(p *models.Product, top, h float64) *Node {
	t := c.theme
	pl := c.productLayout(p)
	group := &Node{Kind: NodeGroup, ID: "body.hero", Y: top, W: c.W, H: h}

	imgW, imgH := c.W*0.62, h*0.42
	img := c.productImageNode(p, "hero.image", (c.W-imgW)/2, top+h*0.03, imgW, imgH)
	group.Append(c.applyTransform(img, pl.Image))

	name := &Node{
		Kind:       NodeText,
		ID:         "hero.name",
		X:          c.W * 0.07,
		Y:          top + h*0.48,
		W:          c.W * 0.86,
		H:          h * 0.14,
		Text:       p.Name,
		FontFamily: t.TitleFont,
		FontSize:   c.W * 0.055,
		Bold:       true,
		Align:      AlignCenter,
		Wrap:       true,
		LineSpacing: 1.1,
		Fill:       ParseHexColor(t.TextColor),
		FitHeight:  h * 0.14,
	}
	group.Append(c.applyTransform(name, pl.Name))

	if p.Description != "" {
		desc := &Node{
			Kind:        NodeText,
			ID:          "hero.description",
			X:           c.W * 0.1,
			Y:           top + h*0.63,
			W:           c.W * 0.8,
			H:           h * 0.12,
			Text:        p.Description,
			FontFamily:  t.BodyFont,
			FontSize:    c.W * 0.03,
			Align:       AlignCenter,
			Wrap:        true,
			LineSpacing: 1.25,
			Fill:        ParseHexColor(t.TextColor),
			FitHeight:   h * 0.12,
		}
		group.Append(c.applyTransform(desc, pl.Description))
	}

	card := c.priceCard(p, priceCardSpec{
		id:       "hero.price",
		x:        c.W * 0.25,
		y:        top + h*0.76,
		w:        c.W * 0.5,
		h:        h * 0.18,
		fontSize: c.W * 0.085,
		showOld:  true,
	})
	group.Append(c.applyTransform(card, pl.Price))

	return group
}

// slideBody is the signage two-column layout: image on the left half,
// name/description/price on the right half.
func (c *composer) slideBody(p *models.Product, top, h float64) *Node {
	t := c.theme
	pl := c.productLayout(p)
	group := &Node{Kind: NodeGroup, ID: "body.slide", Y: top, W: c.W, H: h}

	imgW, imgH := c.W*0.40, h*0.82
	img := c.productImageNode(p, "slide.image", c.W*0.05, top+h*0.09, imgW, imgH)
	group.Append(c.applyTransform(img, pl.Image))

	colX, colW := c.W*0.52, c.W*0.43
	name := &Node{
		Kind:        NodeText,
		ID:          "slide.name",
		X:           colX,
		Y:           top + h*0.1,
		W:           colW,
		H:           h * 0.24,
		Text:        p.Name,
		FontFamily:  t.TitleFont,
		FontSize:    c.W * 0.045,
		Bold:        true,
		Align:       AlignLeft,
		Wrap:        true,
		LineSpacing: 1.1,
		Fill:        ParseHexColor(t.TextColor),
		FitHeight:   h * 0.24,
	}
	group.Append(c.applyTransform(name, pl.Name))

	if p.Description != "" {
		desc := &Node{
			Kind:        NodeText,
			ID:          "slide.description",
			X:           colX,
			Y:           top + h*0.38,
			W:           colW,
			H:           h * 0.18,
			Text:        p.Description,
			FontFamily:  t.BodyFont,
			FontSize:    c.W * 0.022,
			Align:       AlignLeft,
			Wrap:        true,
			LineSpacing: 1.25,
			Fill:        ParseHexColor(t.TextColor),
			FitHeight:   h * 0.18,
		}
		group.Append(c.applyTransform(desc, pl.Description))
	}

	card := c.priceCard(p, priceCardSpec{
		id:       "slide.price",
		x:        colX,
		y:        top + h*0.6,
		w:        colW,
		h:        h * 0.3,
		fontSize: c.W * 0.06,
		showOld:  true,
		align:    AlignLeft,
	})
	group.Append(c.applyTransform(card, pl.Price))

	return group
}

// gridBody tiles the products into LayoutCols[format] columns of compact
// cards, ceil(count/cols) rows.
func (c *composer) gridBody(top, h float64) *Node {
	cols, ok := c.theme.LayoutCols[c.format.ID]
	if !ok || cols < 1 {
		cols = models.DefaultLayoutCols(c.format.ID)
	}
	count := len(c.products)
	rows := (count + cols - 1) / cols

	pad := c.W * 0.025
	cellW := (c.W - pad*float64(cols+1)) / float64(cols)
	cellH := (h - pad*float64(rows+1)) / float64(rows)

	group := &Node{Kind: NodeGroup, ID: "body.grid", Y: top, W: c.W, H: h}
	for i := range c.products {
		col := i % cols
		row := i / cols
		x := pad + float64(col)*(cellW+pad)
		y := top + pad + float64(row)*(cellH+pad)
		group.Append(c.gridCell(&c.products[i], i, x, y, cellW, cellH))
	}
	return group
}

// gridCell is one compact product card: image on top, name, price strip.
func (c *composer) gridCell(p *models.Product, index int, x, y, w, h float64) *Node {
	t := c.theme
	pl := c.productLayout(p)
	id := fmt.Sprintf("grid.cell.%d", index)

	group := &Node{Kind: NodeGroup, ID: id, X: x, Y: y, W: w, H: h}
	group.Append(&Node{
		Kind:   NodeRect,
		ID:     id + ".card",
		X:      x,
		Y:      y,
		W:      w,
		H:      h,
		Fill:   MustHex("#FFFFFF"),
		Stroke: MustHex("#E0E0E0"),
		StrokeWidth: 1,
		Radius: w * 0.04,
	})

	imgH := h * 0.5
	img := c.productImageNode(p, id+".image", x+w*0.1, y+h*0.04, w*0.8, imgH)
	group.Append(c.applyTransform(img, pl.Image))

	name := &Node{
		Kind:        NodeText,
		ID:          id + ".name",
		X:           x + w*0.06,
		Y:           y + h*0.57,
		W:           w * 0.88,
		H:           h * 0.16,
		Text:        p.Name,
		FontFamily:  t.BodyFont,
		FontSize:    w * 0.09,
		Bold:        true,
		Align:       AlignCenter,
		Wrap:        true,
		LineSpacing: 1.05,
		Fill:        ParseHexColor(t.TextColor),
		FitHeight:   h * 0.16,
	}
	group.Append(c.applyTransform(name, pl.Name))

	card := c.priceCard(p, priceCardSpec{
		id:       id + ".price",
		x:        x + w*0.06,
		y:        y + h*0.75,
		w:        w * 0.88,
		h:        h * 0.2,
		fontSize: w * 0.16,
		compact:  true,
	})
	group.Append(c.applyTransform(card, pl.Price))

	return group
}

// footer assembles the footer strip: footer text with its transform and,
// when configured, the QR badge on the right.
func (c *composer) footer() *Node {
	t := c.theme
	hl := c.headerLayout()
	fh := c.H * footerFrac
	y := c.H - fh

	group := &Node{Kind: NodeGroup, ID: "footer", Y: y, W: c.W, H: fh}
	group.Append(&Node{
		Kind: NodeRect,
		ID:   "footer.band",
		Y:    y,
		W:    c.W,
		H:    fh,
		Fill: ParseHexColor(t.PrimaryColor),
	})

	textW := c.W * 0.9
	qrImg := c.opts.image(qrKey(t.FooterQRText))
	if qrImg != nil {
		size := fh * 0.8
		group.Append(&Node{
			Kind:  NodeImage,
			ID:    "footer.qr",
			X:     c.W - size - fh*0.1,
			Y:     y + fh*0.1,
			W:     size,
			H:     size,
			Image: qrImg,
		})
		textW = c.W * 0.76
	}

	if hl.FooterContent != "" {
		text := &Node{
			Kind:       NodeText,
			ID:         "footer.text",
			X:          c.W * 0.05,
			Y:          y + fh*0.3,
			W:          textW,
			H:          fh * 0.4,
			Text:       hl.FooterContent,
			FontFamily: t.BodyFont,
			FontSize:   math.Min(c.W*0.028, fh*0.4),
			Align:      AlignLeft,
			Fill:       ParseHexColor(t.HeaderTextColor),
			FitWidth:   textW,
		}
		group.Append(c.applyTransform(text, hl.FooterText))
	}

	return group
}
