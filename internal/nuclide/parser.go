package nuclide

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// tokenRE splits a stripped, lower-cased token into element, mass and state marker.
var tokenRE = regexp.MustCompile(`^(\pL+)([0-9]*)(.*)$`)

// stateLetters is the FISPACT-II isomer notation. Only these letters are
// accepted; "m" doubles as the bare metastable marker.
var stateLetters = map[string]int{
	"m": 1,
	"n": 2,
	"o": 3,
	"p": 4,
}

// Parse normalizes a raw token such as "Co-60", "co60m1", "Ag108*" or "Co".
// Separators are ignored and matching is case-insensitive. Letters outside
// ASCII are kept so they fail element lookup. A token without a mass number
// is returned as an element expansion.
func Parse(raw string) (Parsed, error) {
	stripped := strings.Map(func(r rune) rune {
		if r == '*' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, raw)

	m := tokenRE.FindStringSubmatch(stripped)
	if m == nil {
		return Parsed{}, fmt.Errorf("%w: %q", ErrInvalidNuclide, raw)
	}
	letters, digits, marker := m[1], m[2], m[3]

	symbol, _, ok := LookupElement(letters)
	if !ok {
		return Parsed{}, fmt.Errorf("%w %q in %q", ErrInvalidElement, letters, raw)
	}

	if digits == "" {
		if marker != "" {
			return Parsed{}, fmt.Errorf("%w: %q has a state but no mass number", ErrInvalidNuclide, raw)
		}
		return Parsed{Element: symbol}, nil
	}

	mass, err := strconv.Atoi(digits)
	if err != nil || mass < 1 {
		return Parsed{}, fmt.Errorf("%w: %q has an invalid mass number", ErrInvalidNuclide, raw)
	}

	state, err := parseState(marker)
	if err != nil {
		return Parsed{}, fmt.Errorf("%w: %q: %v", ErrInvalidNuclide, raw, err)
	}

	return Parsed{ID: ID{Symbol: symbol, Mass: mass, State: state}}, nil
}

// MustParse is like Parse but panics on error or on an element-only token.
// It is intended for fixtures and constants.
func MustParse(raw string) ID {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	if p.IsExpansion() {
		panic(fmt.Sprintf("nuclide: %q has no mass number", raw))
	}
	return p.ID
}

// parseState maps a state marker onto a metastable index.
func parseState(marker string) (int, error) {
	switch {
	case marker == "":
		return 0, nil
	case marker == "*":
		return 1, nil
	case strings.HasPrefix(marker, "m") && len(marker) > 1:
		n, err := strconv.Atoi(marker[1:])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("unrecognised state %q", marker)
		}
		return n, nil
	}
	if n, ok := stateLetters[marker]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("unrecognised state %q", marker)
}
