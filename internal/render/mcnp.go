package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eykd/ddata-go/internal/decay"
)

// SignificantFigures is the precision of every number on an SDEF card.
const SignificantFigures = 6

const (
	keVToMeV = 1e-3

	cardWidth  = 80
	cardIndent = "        "
)

var numberFormat = "%." + strconv.Itoa(SignificantFigures-1) + "e"

// MCNP renders one SI/SP distribution pair per nuclide, numbered from
// req.StartID in dataset order:
//
//	sc100   Co60 decay data, norm = 1.99833e+00 particles/decay
//	si100 L 1.17323e+00 1.33249e+00
//	sp100   9.98500e-01 9.99826e-01
//	c
//
// Energies are in MeV and probabilities are intensities per decay, not
// normalised. Cards are wrapped at 80 columns.
func MCNP(ds decay.Dataset, req Request) (string, error) {
	if err := checkEmpty(ds); err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, e := range ds {
		writeDistribution(&sb, e, req.StartID+i)
	}
	return sb.String(), nil
}

func writeDistribution(sb *strings.Builder, e decay.Entry, id int) {
	energies := make([]string, len(e.Records))
	probs := make([]string, len(e.Records))
	for i, r := range e.Records {
		energies[i] = sci(r.EnergyKeV * keVToMeV)
		probs[i] = sci(r.IntensityPercent / 100)
	}

	fmt.Fprintf(sb, "sc%-5d %s decay data, norm = %s particles/decay\n", id, e.ID.Name(), sci(e.Norm()))
	sb.WriteString(wrapCard(fmt.Sprintf("si%d L %s", id, strings.Join(energies, " "))))
	sb.WriteString("\n")
	sb.WriteString(wrapCard(fmt.Sprintf("sp%-5d %s", id, strings.Join(probs, " "))))
	sb.WriteString("\nc\n")
}

func sci(v float64) string {
	return fmt.Sprintf(numberFormat, v)
}

// wrapCard breaks line at spaces so no output line exceeds cardWidth,
// indenting continuation lines. Spacing inside a line is kept and numbers
// are never split.
func wrapCard(line string) string {
	var (
		lines []string
		cur   string
	)
	for i := 0; i < len(line); {
		start := i
		for i < len(line) && line[i] == ' ' {
			i++
		}
		gap := line[start:i]
		start = i
		for i < len(line) && line[i] != ' ' {
			i++
		}
		word := line[start:i]
		if word == "" {
			break
		}

		switch {
		case cur == "":
			cur = word
		case len(cur)+len(gap)+len(word) <= cardWidth:
			cur += gap + word
		default:
			lines = append(lines, cur)
			cur = cardIndent + word
		}
	}
	return strings.Join(append(lines, cur), "\n")
}
