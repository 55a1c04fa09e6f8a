// Package nuclide resolves free-form nuclide names into canonical
// (element, mass number, metastable state) identifiers.
package nuclide

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidNuclide is returned for tokens that do not name a nuclide or element.
	ErrInvalidNuclide = errors.New("invalid nuclide")
	// ErrInvalidElement is returned when the element part of a token is not a known symbol.
	// It wraps ErrInvalidNuclide.
	ErrInvalidElement = fmt.Errorf("%w: unknown element", ErrInvalidNuclide)
)

// ID is a resolved nuclide: an element symbol in canonical case, a mass
// number and a metastable state index (0 is the ground state).
type ID struct {
	Symbol string
	Mass   int
	State  int
}

// Z returns the atomic number of the element.
func (id ID) Z() int {
	_, z, _ := LookupElement(id.Symbol)
	return z
}

// N returns the neutron number.
func (id ID) N() int {
	return id.Mass - id.Z()
}

// String returns the canonical key, e.g. "Co60m0".
func (id ID) String() string {
	return id.Symbol + strconv.Itoa(id.Mass) + "m" + strconv.Itoa(id.State)
}

// Name returns the display name: "Co60" for ground states, "Co60m1" otherwise.
func (id ID) Name() string {
	if id.State == 0 {
		return id.Symbol + strconv.Itoa(id.Mass)
	}
	return id.String()
}

// APIName returns the IAEA chart of nuclides query name, e.g. "60co".
// The state is not part of the name: all levels share one payload.
func (id ID) APIName() string {
	return strconv.Itoa(id.Mass) + strings.ToLower(id.Symbol)
}

// Ground returns the ground state of the same isotope.
func (id ID) Ground() ID {
	return ID{Symbol: id.Symbol, Mass: id.Mass}
}

// Parsed is the result of parsing one raw token: either a concrete ID or a
// request to expand an element into its isotopes.
type Parsed struct {
	// ID is set when the token carried a mass number.
	ID ID
	// Element is set instead of ID when only an element symbol was given.
	Element string
}

// IsExpansion reports whether the token named only an element.
func (p Parsed) IsExpansion() bool {
	return p.Element != ""
}
