// Package render encodes a selected dataset as a text table, JSON, MCNP SDEF
// cards or a raw CSV dump. Every encoder emits entries in dataset order.
package render

import (
	"github.com/eykd/ddata-go/internal/decay"
)

// ErrEmptyResultSet is returned by every encoder for an empty dataset.
var ErrEmptyResultSet = decay.ErrEmptyResultSet

// DefaultStartID is the first MCNP distribution number.
const DefaultStartID = 100

// Artifact file extensions, appended to the output prefix.
const (
	ExtText = ".txt"
	ExtJSON = ".json"
	ExtMCNP = ".i"
	ExtCSV  = ".csv"
)

// Request holds the settings shared by the encoders of one run.
type Request struct {
	Rad     decay.RadType
	Sort    decay.SortKey
	Prefix  string
	StartID int
}

func checkEmpty(ds decay.Dataset) error {
	if len(ds) == 0 {
		return ErrEmptyResultSet
	}
	return nil
}
