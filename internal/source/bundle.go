package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"

	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/nuclide"
)

// Payload file extensions. Compressed payloads are snappy block encoded.
const (
	extCSV        = ".csv"
	extCompressed = ".csv.sz"
)

// Bundle reads pre-fetched payloads from a directory laid out as
// <root>/<rad code>/<api name>.csv or .csv.sz, e.g. bundle/g/60co.csv.sz.
type Bundle struct {
	root string
}

// NewBundle returns a bundle rooted at dir.
func NewBundle(dir string) *Bundle {
	return &Bundle{root: dir}
}

// Name implements Source.
func (b *Bundle) Name() string { return "bundle" }

// Root returns the bundle directory.
func (b *Bundle) Root() string { return b.root }

// Fetch implements Source.
func (b *Bundle) Fetch(_ context.Context, id nuclide.ID, rad decay.RadType) (string, error) {
	for _, ext := range []string{extCompressed, extCSV} {
		path := filepath.Join(b.root, rad.Code(), id.APIName()+ext)
		data, err := readFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return decodePayload(path, data)
	}
	return "", fmt.Errorf("%s %s: %w", id.Name(), rad, ErrNotFound)
}

// Available implements Source.
func (b *Bundle) Available(_ context.Context, rad decay.RadType) ([]nuclide.ID, error) {
	if _, err := os.Stat(b.root); err != nil {
		return nil, fmt.Errorf("opening bundle: %w", err)
	}
	entries, err := os.ReadDir(filepath.Join(b.root, rad.Code()))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing bundle: %w", err)
	}

	var ids []nuclide.ID
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := idFromPayloadName(e.Name()); ok {
			ids = append(ids, id)
		}
	}
	return sortIDs(ids), nil
}

// Put stores a payload for id's isotope, replacing any existing file.
func (b *Bundle) Put(id nuclide.ID, rad decay.RadType, payload string, compress bool) error {
	dir := filepath.Join(b.root, rad.Code())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating bundle directory: %w", err)
	}

	ext := extCSV
	data := []byte(payload)
	if compress {
		ext = extCompressed
		data = snappy.Encode(nil, data)
	}

	path := filepath.Join(dir, id.APIName()+ext)
	tmp, err := os.CreateTemp(dir, ".put-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	// Drop the other encoding so reads are unambiguous.
	other := extCompressed
	if compress {
		other = extCSV
	}
	if err := os.Remove(filepath.Join(dir, id.APIName()+other)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stale payload: %w", err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck
	return readPayload(f)
}

// decodePayload returns the CSV text of a stored payload named name.
func decodePayload(name string, data []byte) (string, error) {
	if !strings.HasSuffix(name, extCompressed) {
		return string(data), nil
	}
	n, err := snappy.DecodedLen(data)
	if err != nil {
		return "", fmt.Errorf("decompressing %s: %w", name, err)
	}
	if n > MaxPayloadBytes {
		return "", fmt.Errorf("decompressing %s: %w", name, ErrPayloadTooLarge)
	}
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return "", fmt.Errorf("decompressing %s: %w", name, err)
	}
	return string(out), nil
}

// idFromPayloadName parses "60co.csv" or "60co.csv.sz".
func idFromPayloadName(name string) (nuclide.ID, bool) {
	switch {
	case strings.HasSuffix(name, extCompressed):
		name = strings.TrimSuffix(name, extCompressed)
	case strings.HasSuffix(name, extCSV):
		name = strings.TrimSuffix(name, extCSV)
	default:
		return nuclide.ID{}, false
	}
	return parseAPIName(name)
}
