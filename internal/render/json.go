package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/nuclide"
)

// JSON renders ds as an object keyed by canonical nuclide strings
// ("Co60m0") in dataset order, each holding that nuclide's record array.
func JSON(ds decay.Dataset) ([]byte, error) {
	if err := checkEmpty(ds); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, e := range ds {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(e.ID.String())
		if err != nil {
			return nil, err
		}
		recs := e.Records
		if recs == nil {
			recs = []decay.Record{}
		}
		val, err := json.MarshalIndent(recs, "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", e.ID.Name(), err)
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
	}
	buf.WriteString("\n}\n")
	return buf.Bytes(), nil
}

// DecodeJSON reads a document written by JSON back into a dataset, keeping
// the key order.
func DecodeJSON(data []byte) (decay.Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var ds decay.Dataset
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected nuclide key, got %v", tok)
		}
		parsed, err := nuclide.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if parsed.IsExpansion() {
			return nil, fmt.Errorf("key %q: %w: missing mass number", key, nuclide.ErrInvalidNuclide)
		}

		var recs []decay.Record
		if err := dec.Decode(&recs); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}
		ds = append(ds, decay.Entry{ID: parsed.ID, Records: recs})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return ds, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
