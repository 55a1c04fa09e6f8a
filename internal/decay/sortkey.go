package decay

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering of records within a nuclide.
type SortKey int

const (
	// ByEnergy orders records by ascending energy.
	ByEnergy SortKey = iota
	// ByIntensity orders records by descending intensity.
	ByIntensity
)

// ParseSortKey accepts "energy"/"e" and "intensity"/"i".
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "energy", "e":
		return ByEnergy, nil
	case "intensity", "i":
		return ByIntensity, nil
	}
	return 0, fmt.Errorf("unknown sort key %q (want energy or intensity)", s)
}

func (k SortKey) String() string {
	if k == ByIntensity {
		return "intensity"
	}
	return "energy"
}

// Set implements pflag.Value.
func (k *SortKey) Set(s string) error {
	v, err := ParseSortKey(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Type implements pflag.Value.
func (k *SortKey) Type() string {
	return "property"
}

// MarshalText implements encoding.TextMarshaler.
func (k SortKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SortKey) UnmarshalText(text []byte) error {
	return k.Set(string(text))
}
