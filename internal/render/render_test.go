package render_test

import (
	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/nuclide"
)

func f(v float64) *float64 { return &v }

// sampleDataset is Co60 and Cs137 gamma lines sorted by energy.
func sampleDataset() decay.Dataset {
	return decay.Dataset{
		{ID: nuclide.MustParse("co60"), Records: []decay.Record{
			{Type: decay.Gamma, EnergyKeV: 1173.228, IntensityPercent: 99.85, EnergyUncKeV: f(0.003), IntensityUncPercent: f(0.03)},
			{Type: decay.Gamma, EnergyKeV: 1332.492, IntensityPercent: 99.9826},
		}},
		{ID: nuclide.MustParse("cs137"), Records: []decay.Record{
			{Type: decay.Gamma, EnergyKeV: 661.657, IntensityPercent: 85.1},
		}},
	}
}
