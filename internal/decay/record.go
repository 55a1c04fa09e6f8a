package decay

import "github.com/eykd/ddata-go/internal/nuclide"

// Record is a single emission line of a nuclide.
type Record struct {
	Type             RadType `json:"radiation_type"`
	EnergyKeV        float64 `json:"energy_kev"`
	IntensityPercent float64 `json:"intensity_percent"`

	// Uncertainties are passed through from the source when present.
	EnergyUncKeV        *float64 `json:"energy_unc_kev,omitempty"`
	IntensityUncPercent *float64 `json:"intensity_unc_percent,omitempty"`
}

// Entry pairs a nuclide with its records.
type Entry struct {
	ID      nuclide.ID
	Records []Record
}

// Dataset is an ordered list of entries, at most one per ID. The order is
// the order nuclides were requested in and is preserved by every output.
type Dataset []Entry

// IDs returns the entry IDs in order.
func (ds Dataset) IDs() []nuclide.ID {
	ids := make([]nuclide.ID, len(ds))
	for i, e := range ds {
		ids[i] = e.ID
	}
	return ids
}

// RecordCount returns the total number of records across all entries.
func (ds Dataset) RecordCount() int {
	n := 0
	for _, e := range ds {
		n += len(e.Records)
	}
	return n
}

// Norm returns the summed intensity as a fraction per decay.
func (e Entry) Norm() float64 {
	var sum float64
	for _, r := range e.Records {
		sum += r.IntensityPercent
	}
	return sum / 100
}
