package nuclide_test

import (
	"errors"
	"testing"

	"github.com/eykd/ddata-go/internal/nuclide"
)

// TestParse_Concrete verifies that case, separators and state notation all
// normalize to the same canonical ID.
func TestParse_Concrete(t *testing.T) {
	tests := []struct {
		raw  string
		want nuclide.ID
	}{
		{"co60", nuclide.ID{Symbol: "Co", Mass: 60}},
		{"Co-60", nuclide.ID{Symbol: "Co", Mass: 60}},
		{"CO60", nuclide.ID{Symbol: "Co", Mass: 60}},
		{"Co60m0", nuclide.ID{Symbol: "Co", Mass: 60}},
		{"co60m", nuclide.ID{Symbol: "Co", Mass: 60, State: 1}},
		{"co60m1", nuclide.ID{Symbol: "Co", Mass: 60, State: 1}},
		{"co60*", nuclide.ID{Symbol: "Co", Mass: 60, State: 1}},
		{"Co-60-m2", nuclide.ID{Symbol: "Co", Mass: 60, State: 2}},
		{"ta180n", nuclide.ID{Symbol: "Ta", Mass: 180, State: 2}},
		{"hf178o", nuclide.ID{Symbol: "Hf", Mass: 178, State: 3}},
		{"ag108m", nuclide.ID{Symbol: "Ag", Mass: 108, State: 1}},
		{"u235", nuclide.ID{Symbol: "U", Mass: 235}},
		{" Cs_137 ", nuclide.ID{Symbol: "Cs", Mass: 137}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := nuclide.Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.raw, err)
			}
			if got.IsExpansion() {
				t.Fatalf("Parse(%q) returned element expansion %q", tt.raw, got.Element)
			}
			if got.ID != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got.ID, tt.want)
			}
		})
	}
}

// TestParse_ElementExpansion verifies that a bare element yields an expansion
// request with canonical capitalization.
func TestParse_ElementExpansion(t *testing.T) {
	for raw, want := range map[string]string{"be": "Be", "CO": "Co", "u": "U", "Og": "Og"} {
		got, err := nuclide.Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", raw, err)
		}
		if !got.IsExpansion() || got.Element != want {
			t.Errorf("Parse(%q) = %+v, want expansion of %q", raw, got, want)
		}
	}
}

// TestParse_Invalid verifies that malformed tokens fail with ErrInvalidNuclide.
func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		raw         string
		wantElement bool
	}{
		{"xx999", true},
		{"cobalt60", true},
		{"", false},
		{"60co", false},
		{"co0", false},
		{"co60q", false},
		{"co60m1x", false},
		{"co60**", false},
		{"com", true},
		{"Cö60", true},
		{"Coé60", true},
		{"ö", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := nuclide.Parse(tt.raw)
			if !errors.Is(err, nuclide.ErrInvalidNuclide) {
				t.Fatalf("Parse(%q) error = %v, want ErrInvalidNuclide", tt.raw, err)
			}
			if got := errors.Is(err, nuclide.ErrInvalidElement); got != tt.wantElement {
				t.Errorf("errors.Is(err, ErrInvalidElement) = %v, want %v", got, tt.wantElement)
			}
		})
	}
}

func TestID_Names(t *testing.T) {
	ground := nuclide.ID{Symbol: "Co", Mass: 60}
	excited := nuclide.ID{Symbol: "Co", Mass: 60, State: 1}

	if got := ground.String(); got != "Co60m0" {
		t.Errorf("String() = %q, want %q", got, "Co60m0")
	}
	if got := ground.Name(); got != "Co60" {
		t.Errorf("Name() = %q, want %q", got, "Co60")
	}
	if got := excited.Name(); got != "Co60m1" {
		t.Errorf("Name() = %q, want %q", got, "Co60m1")
	}
	if got := excited.APIName(); got != "60co" {
		t.Errorf("APIName() = %q, want %q", got, "60co")
	}
	if excited.Ground() != ground {
		t.Errorf("Ground() = %+v, want %+v", excited.Ground(), ground)
	}
	if ground.Z() != 27 || ground.N() != 33 {
		t.Errorf("Z, N = %d, %d, want 27, 33", ground.Z(), ground.N())
	}
}

// TestParse_StringRoundTrip verifies that the canonical key parses back to the same ID.
func TestParse_StringRoundTrip(t *testing.T) {
	for _, id := range []nuclide.ID{
		{Symbol: "Be", Mass: 7},
		{Symbol: "Tc", Mass: 99, State: 1},
		{Symbol: "Hf", Mass: 178, State: 2},
	} {
		if got := nuclide.MustParse(id.String()); got != id {
			t.Errorf("MustParse(%q) = %+v, want %+v", id.String(), got, id)
		}
	}
}

func TestLookupElement(t *testing.T) {
	sym, z, ok := nuclide.LookupElement("cS")
	if !ok || sym != "Cs" || z != 55 {
		t.Errorf("LookupElement(\"cS\") = %q, %d, %v", sym, z, ok)
	}
	if _, _, ok := nuclide.LookupElement("Zz"); ok {
		t.Error("LookupElement(\"Zz\") should fail")
	}
	if nuclide.Symbol(118) != "Og" || nuclide.Symbol(0) != "" || nuclide.Symbol(119) != "" {
		t.Error("Symbol bounds not respected")
	}
}
