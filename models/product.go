package models

// Product is one catalog entry in the offer. Price fields are decimal
// strings (e.g. "4.99") and are only parsed to fixed two-decimal display
// values at render time, never stored as binary floats.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Price          string `json:"price"`
	OldPrice       string `json:"oldPrice,omitempty"`
	Unit           string `json:"unit"`
	WholesalePrice string `json:"wholesalePrice,omitempty"`
	WholesaleUnit  string `json:"wholesaleUnit,omitempty"`

	ImageURL string `json:"image,omitempty"`

	// Layouts is keyed by format id. Every product that has ever been
	// rendered has an entry for every registered format (guaranteed by
	// layout.EnsureProduct); a missing entry falls back to the neutral
	// default, never to another format's entry.
	Layouts map[string]ProductLayout `json:"layouts"`
}

// DefaultProduct returns a minimal valid product with an entry for every
// registered format.
func DefaultProduct() *Product {
	p := &Product{
		Name:    "Produto",
		Price:   "0.00",
		Unit:    "un",
		Layouts: map[string]ProductLayout{},
	}
	for _, id := range FormatIDs() {
		p.Layouts[id] = DefaultProductLayout()
	}
	return p
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	out := *p
	out.Layouts = make(map[string]ProductLayout, len(p.Layouts))
	for k, v := range p.Layouts {
		out.Layouts[k] = v
	}
	return &out
}

// CloneProducts deep-copies a product list.
func CloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i := range products {
		out[i] = *products[i].Clone()
	}
	return out
}
