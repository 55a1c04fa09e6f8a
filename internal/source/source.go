// Package source supplies raw IAEA decay CSV payloads, either live from the
// chart of nuclides API or from a pre-fetched bundle on disk or S3.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/nuclide"
)

// MaxPayloadBytes bounds a single payload, compressed or not.
const MaxPayloadBytes = 32 << 20

var (
	// ErrNotFound is returned when a source has no payload for a nuclide.
	ErrNotFound = errors.New("no data in source")
	// ErrPayloadTooLarge is returned for payloads over MaxPayloadBytes.
	ErrPayloadTooLarge = fmt.Errorf("payload exceeds the %d MB size limit", MaxPayloadBytes>>20)
)

// readPayload reads r to the end, failing once more than MaxPayloadBytes
// have been seen.
func readPayload(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPayloadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxPayloadBytes {
		return nil, ErrPayloadTooLarge
	}
	return data, nil
}

// Source is a read-only provider of raw decay CSV.
type Source interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Fetch returns the raw CSV payload covering every level of id's isotope
	// for rad. The payload may be empty.
	Fetch(ctx context.Context, id nuclide.ID, rad decay.RadType) (string, error)
	// Available lists the ground-state nuclides the source holds data for.
	Available(ctx context.Context, rad decay.RadType) ([]nuclide.ID, error)
}

// Open returns the bundle source for location: an "s3://bucket/prefix" URI
// or a local directory.
func Open(ctx context.Context, location string) (Source, error) {
	if strings.HasPrefix(location, "s3://") {
		return NewS3Bundle(ctx, location)
	}
	if location == "" {
		return nil, fmt.Errorf("no bundle location configured")
	}
	return NewBundle(location), nil
}

// apiNameRE matches IAEA style names such as "60co".
var apiNameRE = regexp.MustCompile(`^([0-9]+)([a-z]+)$`)

// parseAPIName is the inverse of nuclide.ID.APIName.
func parseAPIName(name string) (nuclide.ID, bool) {
	m := apiNameRE.FindStringSubmatch(strings.ToLower(name))
	if m == nil {
		return nuclide.ID{}, false
	}
	mass, err := strconv.Atoi(m[1])
	if err != nil || mass < 1 {
		return nuclide.ID{}, false
	}
	sym, _, ok := nuclide.LookupElement(m[2])
	if !ok {
		return nuclide.ID{}, false
	}
	return nuclide.ID{Symbol: sym, Mass: mass}, true
}

// sortIDs orders ids by atomic number then mass and drops duplicates.
func sortIDs(ids []nuclide.ID) []nuclide.ID {
	slices.SortFunc(ids, func(a, b nuclide.ID) int {
		if a.Z() != b.Z() {
			return a.Z() - b.Z()
		}
		if a.Mass != b.Mass {
			return a.Mass - b.Mass
		}
		return a.State - b.State
	})
	return slices.Compact(ids)
}
