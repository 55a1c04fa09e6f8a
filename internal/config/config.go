// Package config loads ddata settings from a YAML file and the environment.
//
// Precedence, lowest first: built-in defaults, the config file, environment
// variables, command-line flags. Flags are applied by the cmd package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/eykd/ddata-go/internal/decay"
)

// FileName is the config file looked up in the working directory.
const FileName = ".ddata.yml"

// Environment overrides.
const (
	EnvData    = "DDATA_DATA"
	EnvBaseURL = "DDATA_BASE_URL"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config holds every persistent setting.
type Config struct {
	// Data is a bundle directory or s3://bucket/prefix URI. Empty means the
	// live API is used.
	Data string `yaml:"data,omitempty"`
	// Fetch forces the live API even when Data is set.
	Fetch   bool          `yaml:"fetch"`
	BaseURL string        `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
	// Workers bounds concurrent fetches; 0 means one per CPU.
	Workers int           `yaml:"workers" validate:"min=0,max=256"`
	Output  string        `yaml:"output" validate:"required"`
	ID      int           `yaml:"id" validate:"min=1,max=99999"`
	Sort    decay.SortKey `yaml:"sort" validate:"min=0,max=1"`
	Rad     decay.RadType `yaml:"rad" validate:"min=1,max=6"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Timeout: 30 * time.Second,
		Output:  "decay_data",
		ID:      100,
		Sort:    decay.ByEnergy,
		Rad:     decay.Gamma,
	}
}

// UseLive reports whether payloads come from the live API.
func (c Config) UseLive() bool {
	return c.Fetch || c.Data == ""
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Load reads path over Default, applies environment overrides from getenv
// and validates the result. A missing file yields the defaults unless
// required is set.
func Load(path string, required bool, getenv func(string) string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !required:
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	default:
		if cfg, err = Parse(data); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if getenv != nil {
		if v := getenv(EnvData); v != "" {
			cfg.Data = v
		}
		if v := getenv(EnvBaseURL); v != "" {
			cfg.BaseURL = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Marshal renders c as a commented YAML document.
func Marshal(c Config) ([]byte, error) {
	body, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return append([]byte("# ddata configuration\n"), body...), nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", e.Field())
		case "min":
			return fmt.Errorf("%s: must be at least %s", e.Field(), e.Param())
		case "max":
			return fmt.Errorf("%s: must not exceed %s", e.Field(), e.Param())
		case "url":
			return fmt.Errorf("%s: %q is not a URL", e.Field(), e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", e.Field(), e.Tag())
		}
	}
	return err
}
