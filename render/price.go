package render

import (
	"fmt"
	"math"

	"oferta-studio/models"
	"oferta-studio/utils"
)

// priceCardSpec positions a price card inside the composition.
type priceCardSpec struct {
	id       string
	x, y     float64
	w, h     float64
	fontSize float64
	align    Align
	showOld  bool
	compact  bool
}

// priceCard builds the price block for a product: card background per the
// theme style, old price with strikethrough, discount badge, current
// price with exactly two fractional digits, unit text with its fine-tune
// offsets, and the wholesale block when both wholesale fields are set.
//
// Prices are decimal strings; anything unparseable renders as an empty
// price line rather than failing the whole composition.
func (c *composer) priceCard(p *models.Product, spec priceCardSpec) *Node {
	t := c.theme
	group := &Node{Kind: NodeGroup, ID: spec.id, X: spec.x, Y: spec.y, W: spec.w, H: spec.h, FitWidth: spec.w}

	cents, err := utils.ParseDecimal(p.Price)
	if err != nil {
		cents = 0
	}

	var oldCents int64
	hasOld := false
	if p.OldPrice != "" {
		if v, oldErr := utils.ParseDecimal(p.OldPrice); oldErr == nil {
			oldCents = v
			hasOld = true
		}
	}

	cx := spec.x + spec.w/2
	priceAnchorX := spec.x
	priceAlign := spec.align
	if spec.align == AlignCenter || spec.compact {
		priceAlign = AlignCenter
	}

	// Card background.
	if !spec.compact {
		switch t.PriceCardStyle {
		case models.PriceCardBurst:
			outer := math.Min(spec.w, spec.h*1.6) * 0.58
			group.Append(&Node{
				Kind: NodePath,
				ID:   spec.id + ".burst",
				Fill: ParseHexColor(t.SecondaryColor),
				Ops:  starburstOps(cx, spec.y+spec.h*0.5, outer, outer*0.82, 16),
			})
		case models.PriceCardTag:
			group.Append(&Node{
				Kind:   NodeRect,
				ID:     spec.id + ".tag",
				X:      spec.x,
				Y:      spec.y,
				W:      spec.w,
				H:      spec.h,
				Fill:   ParseHexColor(t.SecondaryColor),
				Radius: spec.h * 0.18,
			})
		}
	}

	lineY := spec.y
	lineH := spec.fontSize * 1.1

	// Old price, struck through, with the discount badge. The badge is
	// shown only when the old price parses to a value strictly greater
	// than the current one.
	if spec.showOld && hasOld {
		if pct := utils.DiscountPercent(oldCents, cents); pct > 0 {
			group.Append(&Node{
				Kind:       NodeText,
				ID:         spec.id + ".old",
				X:          spec.x,
				Y:          lineY,
				W:          spec.w,
				H:          spec.fontSize * 0.55,
				Text:       "R$ " + utils.FormatPrice(oldCents),
				FontFamily: t.BodyFont,
				FontSize:   spec.fontSize * 0.38,
				Align:      priceAlign,
				Strike:     true,
				Fill:       MustHex("#757575"),
			})

			badgeR := spec.fontSize * 0.52
			bx := spec.x + spec.w - badgeR
			by := spec.y + badgeR*0.3
			group.Append(
				&Node{
					Kind: NodePath,
					ID:   spec.id + ".badge",
					Fill: ParseHexColor(t.PrimaryColor),
					Ops:  circleOps(bx, by, badgeR),
				},
				&Node{
					Kind:       NodeText,
					ID:         spec.id + ".badge.text",
					X:          bx - badgeR,
					Y:          by - badgeR*0.45,
					W:          badgeR * 2,
					H:          badgeR * 0.9,
					Text:       fmt.Sprintf("-%d%%", pct),
					FontFamily: t.TitleFont,
					FontSize:   badgeR * 0.62,
					Bold:       true,
					Align:      AlignCenter,
					Fill:       MustHex("#FFFFFF"),
				},
			)
			lineY += spec.fontSize * 0.55
		}
	}

	// Current price, always two fractional digits. The burst card gets
	// the supermarket treatment: big unit digits, small raised centavos.
	if !spec.compact && t.PriceCardStyle == models.PriceCardBurst {
		group.Append(c.splitPrice(spec, cents, lineY, lineH)...)
	} else {
		group.Append(&Node{
			Kind:       NodeText,
			ID:         spec.id + ".current",
			X:          priceAnchorX,
			Y:          lineY,
			W:          spec.w,
			H:          lineH,
			Text:       "R$ " + utils.FormatPrice(cents),
			FontFamily: t.TitleFont,
			FontSize:   spec.fontSize,
			Bold:       true,
			Align:      priceAlign,
			Fill:       ParseHexColor(t.TextColor),
		})
	}

	// Unit of measure with the theme's fine-tune offsets.
	if p.Unit != "" {
		unit := &Node{
			Kind:       NodeText,
			ID:         spec.id + ".unit",
			X:          spec.x,
			Y:          lineY + lineH,
			W:          spec.w,
			H:          spec.fontSize * 0.45,
			Text:       "/" + p.Unit,
			FontFamily: t.BodyFont,
			FontSize:   spec.fontSize * 0.34,
			Align:      priceAlign,
			Fill:       ParseHexColor(t.TextColor),
		}
		unit.X += t.UnitOffsetX * c.s
		unit.Y += t.UnitOffsetY * c.s
		unit.Scale = t.UnitScale
		group.Append(unit)
		lineY += spec.fontSize * 0.45
	}

	// Wholesale block only when both the price and the unit are present.
	if !spec.compact && p.WholesalePrice != "" && p.WholesaleUnit != "" {
		if wCents, wErr := utils.ParseDecimal(p.WholesalePrice); wErr == nil {
			group.Append(&Node{
				Kind:       NodeText,
				ID:         spec.id + ".wholesale",
				X:          spec.x,
				Y:          lineY + lineH,
				W:          spec.w,
				H:          spec.fontSize * 0.5,
				Text:       fmt.Sprintf("atacado R$ %s /%s", utils.FormatPrice(wCents), p.WholesaleUnit),
				FontFamily: t.BodyFont,
				FontSize:   spec.fontSize * 0.3,
				Align:      priceAlign,
				Fill:       ParseHexColor(t.TextColor),
			})
		}
	}

	return group
}

// splitPrice lays out the current price as three nodes: a small "R$"
// prefix, big unit digits, and raised two-digit centavos. Widths are
// estimated proportionally and the cluster is centred in the card; the
// card's width fit downscales the whole block if it overflows.
func (c *composer) splitPrice(spec priceCardSpec, cents int64, lineY, lineH float64) []*Node {
	t := c.theme
	units, frac := utils.PriceParts(cents)

	currencySize := spec.fontSize * 0.42
	unitsSize := spec.fontSize * 1.3
	fracSize := spec.fontSize * 0.55

	currencyW := 2 * currencySize * 0.6
	unitsW := float64(len(units)) * unitsSize * 0.58
	fracW := 2 * fracSize * 0.6
	left := spec.x + (spec.w-(currencyW+unitsW+fracW))/2

	fill := ParseHexColor(t.TextColor)
	return []*Node{
		{
			Kind:       NodeText,
			ID:         spec.id + ".current.currency",
			X:          left,
			Y:          lineY + lineH*0.45,
			W:          currencyW,
			H:          currencySize,
			Text:       "R$",
			FontFamily: t.BodyFont,
			FontSize:   currencySize,
			Bold:       true,
			Fill:       fill,
		},
		{
			Kind:       NodeText,
			ID:         spec.id + ".current.units",
			X:          left + currencyW,
			Y:          lineY,
			W:          unitsW,
			H:          lineH,
			Text:       units,
			FontFamily: t.TitleFont,
			FontSize:   unitsSize,
			Bold:       true,
			Align:      AlignCenter,
			Fill:       fill,
		},
		{
			Kind:       NodeText,
			ID:         spec.id + ".current.cents",
			X:          left + currencyW + unitsW,
			Y:          lineY,
			W:          fracW,
			H:          fracSize * 1.2,
			Text:       frac,
			FontFamily: t.TitleFont,
			FontSize:   fracSize,
			Bold:       true,
			Fill:       fill,
		},
	}
}
