package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/eykd/ddata-go/internal/config"
	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/nuclide"
	"github.com/eykd/ddata-go/internal/source"
)

// fileIO implements DecayIO, AvailableIO and BundleIO using OS file I/O
// and the real data sources.
type fileIO struct{}

func newDefaultFileIO() *fileIO {
	return &fileIO{}
}

// LoadConfig reads the config file with environment overrides applied.
func (f *fileIO) LoadConfig(path string, required bool) (config.Config, error) {
	return config.Load(path, required, os.Getenv)
}

// OpenSource returns the live API or the configured bundle.
func (f *fileIO) OpenSource(ctx context.Context, cfg config.Config) (source.Source, error) {
	if cfg.UseLive() {
		return source.NewIAEA(cfg.BaseURL, cfg.Timeout, userAgent), nil
	}
	return source.Open(ctx, cfg.Data)
}

// IsTerminal reports whether w is a character device.
func (f *fileIO) IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// PutPayload stores a payload in the bundle directory dir.
func (f *fileIO) PutPayload(dir string, id nuclide.ID, rad decay.RadType, payload string, compress bool) error {
	return source.NewBundle(dir).Put(id, rad, payload, compress)
}

// WriteArtifact writes content to path, creating parent directories. When
// they cannot be created the file is written to the working directory.
func (f *fileIO) WriteArtifact(path string, content []byte) (string, error) {
	return f.WriteArtifactImpl(path, content)
}

// WriteArtifactImpl performs the directory fallback and the atomic write.
func (f *fileIO) WriteArtifactImpl(path string, content []byte) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			path = filepath.Base(path)
		}
	}
	if err := writeFileAtomic(path, content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// writeFileAtomic writes content via a temp file in the target directory,
// then renames it into place.
func writeFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ddata-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
