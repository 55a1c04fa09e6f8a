package render

import (
	"fmt"
	"strings"

	"github.com/eykd/ddata-go/internal/decay"
)

// RawPayload is one unmodified source payload for the CSV dump.
type RawPayload struct {
	// Name is the source's isotope name, e.g. "60co".
	Name string
	CSV  string
	Err  error
}

// RawCSV concatenates payloads, each under a banner line. A failed payload
// is replaced by a single note. Payloads are written as received.
func RawCSV(payloads []RawPayload, rad decay.RadType) (string, error) {
	if len(payloads) == 0 {
		return "", ErrEmptyResultSet
	}

	var sb strings.Builder
	for _, p := range payloads {
		fmt.Fprintf(&sb, "\nIAEA %s CSV records for %s decay\n", p.Name, rad)
		if p.Err != nil {
			fmt.Fprintf(&sb, "No CSV data found for %s records of %s\n", rad, p.Name)
			continue
		}
		sb.WriteString(p.CSV)
		if !strings.HasSuffix(p.CSV, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
