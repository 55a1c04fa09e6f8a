package decay

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/eykd/ddata-go/internal/nuclide"
)

// CSV column names used by the IAEA decay_rads payloads.
const (
	colEnergy       = "energy"
	colEnergyUnc    = "unc_en"
	colIntensity    = "intensity"
	colIntensityUnc = "unc_i"
	colParentLevel  = "p_energy"
	colParentZ      = "p_z"
	colParentN      = "p_n"
	colRadType      = "rad_type"
	colType         = "type"
)

// Stats counts what happened to the rows of one payload.
type Stats struct {
	Rows    int // data rows read
	Kept    int // rows returned as records
	Dropped int // rows with missing or invalid energy/intensity
}

// row is a decoded CSV line before level selection.
type row struct {
	rec   Record
	level *float64
	valid bool
}

// Decode parses a raw CSV payload into the records of id. tag is the
// radiation type the payload was requested for; photon payloads may
// override it per row through their type column.
//
// Rows without a valid non-negative energy and intensity are dropped. An
// empty or unreadable payload yields no records rather than an error.
func Decode(raw string, id nuclide.ID, tag RadType) []Record {
	recs, _ := DecodeStats(raw, id, tag)
	return recs
}

// DecodeStats is Decode with row accounting.
func DecodeStats(raw string, id nuclide.ID, tag RadType) ([]Record, Stats) {
	var stats Stats

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(raw, "\ufeff")))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, stats
	}
	cols := indexColumns(header)
	if _, ok := cols[colEnergy]; !ok {
		return nil, stats
	}
	if _, ok := cols[colIntensity]; !ok {
		return nil, stats
	}

	typeCol := ""
	if tag.Category() == CategoryPhoton {
		for _, c := range []string{colRadType, colType} {
			if _, ok := cols[c]; ok {
				typeCol = c
				break
			}
		}
	}

	wantZ, wantN := id.Z(), id.N()
	var rows []row
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken line ends the usable part of the payload.
			break
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		stats.Rows++

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		if !parentMatches(get(colParentZ), get(colParentN), wantZ, wantN) {
			stats.Dropped++
			continue
		}

		rw := row{rec: Record{Type: tag}, level: parseOptional(get(colParentLevel))}
		if typeCol != "" {
			if t, ok := photonTag(get(typeCol)); ok {
				rw.rec.Type = t
			}
		}

		energy, eok := parseNonNegative(get(colEnergy))
		intensity, iok := parseNonNegative(get(colIntensity))
		if eok && iok {
			rw.valid = true
			rw.rec.EnergyKeV = energy
			rw.rec.IntensityPercent = intensity
			rw.rec.EnergyUncKeV = parseOptional(get(colEnergyUnc))
			rw.rec.IntensityUncPercent = parseOptional(get(colIntensityUnc))
		} else {
			stats.Dropped++
		}
		rows = append(rows, rw)
	}

	recs := selectLevel(rows, id.State)
	stats.Kept = len(recs)
	return recs, stats
}

// selectLevel keeps the valid rows that belong to the requested metastable
// state. A payload covers every level of an isotope, identified by the
// parent level energy. When the lowest level listed is not 0 keV the
// payload carries no ground-state data and state N maps to the Nth level.
func selectLevel(rows []row, state int) []Record {
	var levels []float64
	for _, rw := range rows {
		if rw.level != nil {
			levels = append(levels, *rw.level)
		}
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)

	var target float64
	switch {
	case len(levels) == 0:
		if state != 0 {
			return nil
		}
	case levels[0] == 0:
		if state >= len(levels) {
			return nil
		}
		target = levels[state]
	default:
		if state == 0 || state > len(levels) {
			return nil
		}
		target = levels[state-1]
	}

	var out []Record
	for _, rw := range rows {
		if !rw.valid {
			continue
		}
		if len(levels) > 0 && rw.level != nil && *rw.level != target {
			continue
		}
		out = append(out, rw.rec)
	}
	return out
}

// indexColumns maps lower-cased header names to their column index. The
// first occurrence of a repeated name wins.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

// parentMatches reports whether the parent columns, when present, name the
// expected nuclide.
func parentMatches(zs, ns string, wantZ, wantN int) bool {
	if zs == "" || ns == "" {
		return true
	}
	z, errZ := strconv.Atoi(zs)
	n, errN := strconv.Atoi(ns)
	if errZ != nil || errN != nil {
		return true
	}
	return z == wantZ && n == wantN
}

func parseNonNegative(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func parseOptional(s string) *float64 {
	v, ok := parseNonNegative(s)
	if !ok {
		return nil
	}
	return &v
}
