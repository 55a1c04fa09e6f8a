// Package decay models decay-radiation records and the rules for decoding,
// filtering and ordering them.
package decay

import (
	"fmt"
	"strings"
)

// RadType is a decay radiation type as classified by the IAEA chart of nuclides.
type RadType int

// Radiation types. The zero value is not a valid type.
const (
	Alpha RadType = iota + 1
	BetaPlus
	BetaMinus
	Gamma
	Electron
	XRay
)

// AllRadTypes lists every radiation type in declaration order.
var AllRadTypes = []RadType{Alpha, BetaPlus, BetaMinus, Gamma, Electron, XRay}

// Category groups radiation types that share a source payload.
type Category string

const (
	// CategoryPhoton covers gamma and x-ray emission.
	CategoryPhoton Category = "photon"
	// CategoryAlpha covers alpha decay.
	CategoryAlpha Category = "alpha"
	// CategoryBeta covers beta-plus (and electron capture) and beta-minus decay.
	CategoryBeta Category = "beta"
	// CategoryElectron covers Auger and conversion electrons.
	CategoryElectron Category = "electron"
)

var radNames = map[RadType]string{
	Alpha:     "alpha",
	BetaPlus:  "beta-plus",
	BetaMinus: "beta-minus",
	Gamma:     "gamma",
	Electron:  "electron",
	XRay:      "x-ray",
}

var radCodes = map[RadType]string{
	Alpha:     "a",
	BetaPlus:  "bp",
	BetaMinus: "bm",
	Gamma:     "g",
	Electron:  "e",
	XRay:      "x",
}

// radAliases is the explicit string mapping accepted by ParseRadType.
var radAliases = map[string]RadType{
	"alpha":      Alpha,
	"a":          Alpha,
	"beta-plus":  BetaPlus,
	"betaplus":   BetaPlus,
	"beta+":      BetaPlus,
	"b+":         BetaPlus,
	"bp":         BetaPlus,
	"beta-minus": BetaMinus,
	"betaminus":  BetaMinus,
	"beta-":      BetaMinus,
	"b-":         BetaMinus,
	"bm":         BetaMinus,
	"gamma":      Gamma,
	"g":          Gamma,
	"electron":   Electron,
	"e":          Electron,
	"x-ray":      XRay,
	"xray":       XRay,
	"x":          XRay,
}

// ParseRadType maps a name, alias or IAEA code onto a RadType.
func ParseRadType(s string) (RadType, error) {
	if r, ok := radAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unknown radiation type %q", s)
}

// String returns the canonical lower-case name, e.g. "beta-plus".
func (r RadType) String() string {
	if n, ok := radNames[r]; ok {
		return n
	}
	return fmt.Sprintf("RadType(%d)", int(r))
}

// Code returns the IAEA API rad_types code, e.g. "bp".
func (r RadType) Code() string {
	return radCodes[r]
}

// Category returns the source category of r.
func (r RadType) Category() Category {
	switch r {
	case Gamma, XRay:
		return CategoryPhoton
	case Alpha:
		return CategoryAlpha
	case BetaPlus, BetaMinus:
		return CategoryBeta
	default:
		return CategoryElectron
	}
}

// Includes reports whether a request for r should keep a record of type other.
// A gamma request keeps x-rays too; every other request is exact.
func (r RadType) Includes(other RadType) bool {
	if r == Gamma {
		return other == Gamma || other == XRay
	}
	return r == other
}

// MarshalText implements encoding.TextMarshaler.
func (r RadType) MarshalText() ([]byte, error) {
	n, ok := radNames[r]
	if !ok {
		return nil, fmt.Errorf("invalid radiation type %d", int(r))
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RadType) UnmarshalText(text []byte) error {
	v, err := ParseRadType(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Set implements pflag.Value so a RadType can be bound directly to a flag.
func (r *RadType) Set(s string) error {
	return r.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (r *RadType) Type() string {
	return "rad"
}

// photonTag classifies the type column of a photon payload. ok is false when
// the value does not say.
func photonTag(v string) (RadType, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "":
		return 0, false
	case strings.HasPrefix(v, "x"):
		return XRay, true
	case v == "g" || v == "gamma":
		return Gamma, true
	}
	return 0, false
}
