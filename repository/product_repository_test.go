package repository

import (
	"testing"

	"oferta-studio/models"
)

func TestDecodeProductRow(t *testing.T) {
	t.Run("valid document keeps its fields", func(t *testing.T) {
		doc := []byte(`{"name":"Banana Prata","price":"4.99","unit":"kg","layouts":{}}`)
		p := decodeProductRow("p1", doc)
		if p.ID != "p1" {
			t.Errorf("id = %q, want p1", p.ID)
		}
		if p.Name != "Banana Prata" || p.Price != "4.99" {
			t.Errorf("decoded product = %q / %q, want Banana Prata / 4.99", p.Name, p.Price)
		}
		for _, id := range models.FormatIDs() {
			if _, ok := p.Layouts[id]; !ok {
				t.Errorf("missing layout entry for %s", id)
			}
		}
	})

	t.Run("invalid shape substitutes the default product", func(t *testing.T) {
		// Layouts mixing element keys with format ids is unrecognizable.
		doc := []byte(`{"name":"Corrupto","layouts":{"image":{"scale":1},"story":{}}}`)
		p := decodeProductRow("p2", doc)
		if p == nil {
			t.Fatal("expected a substitute product, got nil")
		}
		if p.ID != "p2" {
			t.Errorf("id = %q, want the row id p2", p.ID)
		}
		if p.Name == "Corrupto" {
			t.Error("partial data from an invalid document must not survive")
		}
		if p.Name != models.DefaultProduct().Name {
			t.Errorf("name = %q, want the default product name", p.Name)
		}
	})

	t.Run("malformed json substitutes the default product", func(t *testing.T) {
		p := decodeProductRow("p3", []byte(`{not json`))
		if p == nil || p.ID != "p3" {
			t.Fatalf("p = %+v, want default product with id p3", p)
		}
	})
}
