package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/ddata-go/internal/config"
	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/metrics"
	"github.com/eykd/ddata-go/internal/nuclide"
	"github.com/eykd/ddata-go/internal/pipeline"
	"github.com/eykd/ddata-go/internal/render"
	"github.com/eykd/ddata-go/internal/source"
)

// SourceOpener returns the data source a configuration selects.
type SourceOpener interface {
	OpenSource(ctx context.Context, cfg config.Config) (source.Source, error)
}

// DecayIO handles I/O for the main ddata command.
type DecayIO interface {
	ConfigLoader
	SourceOpener
	// WriteArtifact writes content to path and returns the path actually
	// written, which differs when the parent directory could not be created.
	WriteArtifact(path string, content []byte) (string, error)
	// IsTerminal reports whether w is an interactive terminal.
	IsTerminal(w io.Writer) bool
}

// decayFlags are the output flags of the main command.
type decayFlags struct {
	sort        decay.SortKey
	output      string
	id          int
	text        bool
	json        bool
	mcnp        bool
	csv         bool
	metricsFile string
}

// NewDecayCmd creates the main command: ddata <nuclides...>.
func NewDecayCmd(dio DecayIO, g *globalFlags) *cobra.Command {
	f := &decayFlags{}

	cmd := &cobra.Command{
		Use:   "ddata <nuclides...>",
		Short: "ddata - decay radiation data from the IAEA chart of nuclides",
		Long: `Retrieve decay radiation data for one or more nuclides.

Nuclides are case-insensitive and may be separated: co60, Co-60, co60m,
Co60m1, co60*. A bare element (co) expands to every isotope with data.

Examples:
  ddata co60 cs137 --mcnp --id 200
  ddata eu152 --rad x-ray --sort intensity --json
  ddata be --fetch --text -o out/beryllium`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			cfg, err := g.load(cmd, dio)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("sort") {
				cfg.Sort = f.sort
			}
			if fs.Changed("output") {
				cfg.Output = f.output
			}
			if fs.Changed("id") {
				cfg.ID = f.id
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}

			diags, err := runDecay(cmd, dio, g, f, cfg, args)
			if !g.quiet {
				printDiagnostics(cmd, diags)
			}
			return err
		},
	}

	cmd.Flags().VarP(&f.sort, "sort", "s", "sort records by energy or intensity")
	cmd.Flags().StringVarP(&f.output, "output", "o", "decay_data", "output file prefix")
	cmd.Flags().BoolVar(&f.text, "text", false, "write the table to <output>.txt")
	cmd.Flags().BoolVar(&f.json, "json", false, "write records to <output>.json")
	cmd.Flags().BoolVar(&f.mcnp, "mcnp", false, "write MCNP SDEF cards to <output>.i")
	cmd.Flags().IntVar(&f.id, "id", render.DefaultStartID, "first MCNP distribution number")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "write the unmodified source payloads to <output>.csv")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "write run metrics in Prometheus text format")

	return cmd
}

// artifact is one output file.
type artifact struct {
	format string
	ext    string
	render func() ([]byte, error)
}

func runDecay(cmd *cobra.Command, dio DecayIO, g *globalFlags, f *decayFlags, cfg config.Config, tokens []string) ([]pipeline.Diagnostic, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := g.logger(cmd.ErrOrStderr(), dio.IsTerminal(cmd.ErrOrStderr()))
	defer func() { _ = log.Sync() }()

	reg := metrics.NewRegistry()
	if f.metricsFile != "" {
		defer func() {
			if err := reg.WriteTextfile(f.metricsFile); err != nil {
				log.Warn("writing metrics", zap.String("path", f.metricsFile), zap.Error(err))
			}
		}()
	}

	src, err := dio.OpenSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening data source: %w", err)
	}
	log.Debug("data source ready", zap.String("source", src.Name()), zap.Stringer("rad", cfg.Rad))

	res, err := pipeline.New(src, log, reg).Run(ctx, pipeline.Request{
		Tokens:  tokens,
		Rad:     cfg.Rad,
		Sort:    cfg.Sort,
		Workers: cfg.Workers,
	})
	if errors.Is(err, pipeline.ErrEmptyResultSet) {
		return res.Diagnostics, fmt.Errorf("no artifacts written: %w", err)
	}
	if err != nil {
		return res.Diagnostics, err
	}

	req := render.Request{Rad: cfg.Rad, Sort: cfg.Sort, Prefix: cfg.Output, StartID: cfg.ID}

	if !g.quiet {
		styles := render.PlainStyles()
		if !g.noColour {
			styles = render.TerminalStyles(cmd.OutOrStdout())
		}
		table, err := render.Text(res.Dataset, req, styles)
		if err != nil {
			return res.Diagnostics, err
		}
		fmt.Fprint(cmd.OutOrStdout(), table)
	}

	var artifacts []artifact
	if f.text {
		artifacts = append(artifacts, artifact{"text", render.ExtText, func() ([]byte, error) {
			s, err := render.Text(res.Dataset, req, render.PlainStyles())
			return []byte(s), err
		}})
	}
	if f.json {
		artifacts = append(artifacts, artifact{"json", render.ExtJSON, func() ([]byte, error) {
			return render.JSON(res.Dataset)
		}})
	}
	if f.mcnp {
		artifacts = append(artifacts, artifact{"mcnp", render.ExtMCNP, func() ([]byte, error) {
			s, err := render.MCNP(res.Dataset, req)
			return []byte(s), err
		}})
	}
	if f.csv {
		artifacts = append(artifacts, artifact{"csv", render.ExtCSV, func() ([]byte, error) {
			payloads := rawPayloads(ctx, src, res.Dataset.IDs(), cfg, log, reg)
			s, err := render.RawCSV(payloads, cfg.Rad)
			return []byte(s), err
		}})
	}

	for _, a := range artifacts {
		content, err := a.render()
		if err != nil {
			return res.Diagnostics, fmt.Errorf("rendering %s: %w", a.format, err)
		}
		want := req.Prefix + a.ext
		path, err := dio.WriteArtifact(want, content)
		if err != nil {
			return res.Diagnostics, fmt.Errorf("writing %s: %w", sanitize(want), err)
		}
		if path != want {
			log.Warn("output directory unavailable, wrote to working directory",
				zap.String("requested", want), zap.String("path", path))
		}
		reg.RecordArtifact(a.format)
		log.Debug("wrote artifact", zap.String("format", a.format), zap.String("path", path))
	}
	return res.Diagnostics, nil
}

// rawPayloads fetches the unmodified payload of every distinct isotope in ids.
func rawPayloads(ctx context.Context, src source.Source, ids []nuclide.ID, cfg config.Config, log *zap.Logger, reg *metrics.Registry) []render.RawPayload {
	seen := map[string]bool{}
	var reqs []source.Request
	for _, id := range ids {
		ground := id.Ground()
		if seen[ground.APIName()] {
			continue
		}
		seen[ground.APIName()] = true
		reqs = append(reqs, source.Request{ID: ground, Rad: cfg.Rad})
	}

	resps := source.FetchAll(ctx, src, reqs, source.FetchOptions{Workers: cfg.Workers, Logger: log, Metrics: reg})
	out := make([]render.RawPayload, len(resps))
	for i, r := range resps {
		out[i] = render.RawPayload{Name: r.ID.APIName(), CSV: r.CSV, Err: r.Err}
	}
	return out
}
