package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pão Francês", "pao-frances"},
		{"Açúcar Cristal 1kg", "acucar-cristal-1kg"},
		{"  Feijão  Carioca  ", "feijao-carioca"},
		{"Cartaz A4", "cartaz-a4"},
		{"R$ 4,99!!!", "r-4-99"},
		{"---", "item"},
		{"", "item"},
		{"Maçã", "maca"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := Slugify(tc.in); got != tc.want {
				t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
