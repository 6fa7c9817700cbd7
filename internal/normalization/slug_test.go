package normalization

import "testing"

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Water Heater Thermal Model", "water-heater-thermal-model"},
		{"  vending_demand_forecast  ", "vending-demand-forecast"},
		{"already-a-slug", "already-a-slug"},
		{"Weird!!Chars##", "weirdchars"},
		{"double--hyphen", "double-hyphen"},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Slug(c.in); got != c.want {
			t.Fatalf("Slug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
