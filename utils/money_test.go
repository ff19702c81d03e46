package utils

import "testing"

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "plain", in: "4.99", want: 499},
		{name: "comma separator", in: "4,99", want: 499},
		{name: "integer", in: "12", want: 1200},
		{name: "one fraction digit", in: "4.5", want: 450},
		{name: "extra fraction digits truncated", in: "4.999", want: 499},
		{name: "currency prefix", in: "R$ 6,50", want: 650},
		{name: "leading dot", in: ".99", want: 99},
		{name: "negative", in: "-1.25", want: -125},
		{name: "zero", in: "0", want: 0},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "abc", wantErr: true},
		{name: "two dots", in: "1.2.3", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDecimal(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimal(%q) expected error, got %d", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimal(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseDecimal(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{499, "4,99"},
		{1200, "12,00"},
		{5, "0,05"},
		{0, "0,00"},
		{-125, "-1,25"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.cents); got != tc.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestPriceParts(t *testing.T) {
	units, frac := PriceParts(1999)
	if units != "19" || frac != "99" {
		t.Errorf("PriceParts(1999) = (%q, %q), want (19, 99)", units, frac)
	}
	units, frac = PriceParts(50)
	if units != "0" || frac != "50" {
		t.Errorf("PriceParts(50) = (%q, %q), want (0, 50)", units, frac)
	}
}

func TestDiscountPercent(t *testing.T) {
	cases := []struct {
		name     string
		old, new int64
		want     int
	}{
		{name: "typical offer", old: 650, new: 499, want: 23},
		{name: "half off", old: 1000, new: 500, want: 50},
		{name: "rounds up", old: 300, new: 295, want: 2},
		{name: "no discount when equal", old: 500, new: 500, want: 0},
		{name: "no discount when higher", old: 400, new: 500, want: 0},
		{name: "zero old price", old: 0, new: 100, want: 0},
		{name: "negative new price", old: 100, new: -1, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DiscountPercent(tc.old, tc.new); got != tc.want {
				t.Errorf("DiscountPercent(%d, %d) = %d, want %d", tc.old, tc.new, got, tc.want)
			}
		})
	}
}
