package decay

import (
	"errors"
	"slices"

	"github.com/eykd/ddata-go/internal/nuclide"
)

// ErrEmptyResultSet is returned when no requested nuclide has records left
// for the chosen radiation type.
var ErrEmptyResultSet = errors.New("no nuclides have relevant decay data records")

// Select filters every entry of ds down to the records rad asks for and
// orders them by key. Entries left without records are omitted from the
// result and their IDs returned in dataset order. ds is not modified.
func Select(ds Dataset, rad RadType, key SortKey) (Dataset, []nuclide.ID) {
	var (
		out   Dataset
		empty []nuclide.ID
	)
	for _, e := range ds {
		var recs []Record
		for _, r := range e.Records {
			if rad.Includes(r.Type) {
				recs = append(recs, r)
			}
		}
		if len(recs) == 0 {
			empty = append(empty, e.ID)
			continue
		}
		Sort(recs, key)
		out = append(out, Entry{ID: e.ID, Records: recs})
	}
	return out, empty
}

// Sort orders recs in place by key. Equal keys keep their relative order.
func Sort(recs []Record, key SortKey) {
	switch key {
	case ByIntensity:
		slices.SortStableFunc(recs, func(a, b Record) int {
			return cmpFloat(b.IntensityPercent, a.IntensityPercent)
		})
	default:
		slices.SortStableFunc(recs, func(a, b Record) int {
			return cmpFloat(a.EnergyKeV, b.EnergyKeV)
		})
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
