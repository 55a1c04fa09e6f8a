// Package cmd implements the ddata CLI commands.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/ddata-go/internal/config"
	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/logging"
	"github.com/eykd/ddata-go/internal/pipeline"
)

// userAgent identifies ddata to the IAEA API.
const userAgent = "ddata-go/1 (+https://github.com/eykd/ddata-go)"

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	verbose    int
	quiet      bool
	noColour   bool
	rad        decay.RadType
	fetch      bool
	data       string
	baseURL    string
	workers    int
}

// NewRootCmd creates the root ddata command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newDefaultFileIO(), newDefaultInitIO())
}

// cliIO is the I/O used by every command except init.
type cliIO interface {
	DecayIO
	BundleIO
}

func newRootCmd(cio cliIO, iio InitIO) *cobra.Command {
	g := &globalFlags{rad: decay.Gamma}

	root := NewDecayCmd(cio, g)
	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default ./"+config.FileName+")")
	pf.CountVarP(&g.verbose, "verbose", "v", "verbose logging, repeat for caller information")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "no terminal table, summary or logging")
	pf.BoolVar(&g.noColour, "no-colour", false, "disable coloured output")
	pf.VarP(&g.rad, "rad", "r", "radiation type: alpha, beta-plus, beta-minus, gamma, electron or x-ray")
	pf.BoolVarP(&g.fetch, "fetch", "f", false, "fetch from the IAEA API even when a bundle is configured")
	pf.StringVar(&g.data, "data", "", "bundle directory or s3://bucket/prefix")
	pf.StringVar(&g.baseURL, "base-url", "", "IAEA API endpoint")
	pf.IntVarP(&g.workers, "workers", "w", 0, "concurrent fetches (default one per CPU)")

	root.AddCommand(NewAvailableCmd(cio, g))
	root.AddCommand(NewBundleCmd(cio, g))
	root.AddCommand(NewInitCmd(iio))
	return root
}

// ConfigLoader reads the configuration file.
type ConfigLoader interface {
	LoadConfig(path string, required bool) (config.Config, error)
}

// load reads the config file and applies the persistent flags the user set.
// The result is not validated; callers apply their own flags first.
func (g *globalFlags) load(cmd *cobra.Command, loader ConfigLoader) (config.Config, error) {
	path, required := g.configPath, true
	if path == "" {
		path, required = config.FileName, false
	}
	cfg, err := loader.LoadConfig(path, required)
	if err != nil {
		return config.Config{}, err
	}

	fs := cmd.Flags()
	if fs.Changed("rad") {
		cfg.Rad = g.rad
	}
	if fs.Changed("fetch") {
		cfg.Fetch = g.fetch
	}
	if fs.Changed("data") {
		cfg.Data = g.data
	}
	if fs.Changed("base-url") {
		cfg.BaseURL = g.baseURL
	}
	if fs.Changed("workers") {
		cfg.Workers = g.workers
	}
	return cfg, nil
}

func (g *globalFlags) logger(w io.Writer, terminal bool) *zap.Logger {
	return logging.New(w, logging.Options{
		Verbosity: g.verbose,
		Quiet:     g.quiet,
		Colour:    terminal && !g.noColour,
		RunID:     logging.NewRunID(),
	})
}

// printDiagnostics writes each diagnostic to stderr in human-readable form.
func printDiagnostics(cmd *cobra.Command, diags []pipeline.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (%s)\n", d.Severity, sanitize(d.Message), d.Code)
	}
}
