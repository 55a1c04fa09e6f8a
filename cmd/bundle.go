package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/metrics"
	"github.com/eykd/ddata-go/internal/nuclide"
	"github.com/eykd/ddata-go/internal/pipeline"
	"github.com/eykd/ddata-go/internal/source"
)

// BundleIO handles I/O for the bundle command.
type BundleIO interface {
	ConfigLoader
	SourceOpener
	PutPayload(dir string, id nuclide.ID, rad decay.RadType, payload string, compress bool) error
}

// NewBundleCmd creates the bundle subcommand, which downloads payloads from
// the live API into the bundle directory given by --data.
func NewBundleCmd(bio BundleIO, g *globalFlags) *cobra.Command {
	var (
		all      bool
		compress bool
	)

	cmd := &cobra.Command{
		Use:          "bundle [nuclides...]",
		Short:        "Download decay data from the IAEA API into a bundle directory",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return fmt.Errorf("name the nuclides to bundle or pass --all")
			}

			cfg, err := g.load(cmd, bio)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}
			dir := cfg.Data
			if dir == "" || strings.HasPrefix(dir, "s3://") {
				return fmt.Errorf("bundle needs a local --data directory")
			}
			cfg.Fetch = true

			ctx := cmd.Context()
			log := g.logger(cmd.ErrOrStderr(), false)
			defer func() { _ = log.Sync() }()

			src, err := bio.OpenSource(ctx, cfg)
			if err != nil {
				return fmt.Errorf("opening data source: %w", err)
			}

			var (
				ids   []nuclide.ID
				diags []pipeline.Diagnostic
			)
			if all {
				if ids, err = src.Available(ctx, cfg.Rad); err != nil {
					return fmt.Errorf("listing %s: %w", src.Name(), err)
				}
			} else {
				ids, diags = pipeline.New(src, log, nil).Resolve(ctx, args, cfg.Rad)
			}

			seen := map[string]bool{}
			var reqs []source.Request
			for _, id := range ids {
				if seen[id.APIName()] {
					continue
				}
				seen[id.APIName()] = true
				reqs = append(reqs, source.Request{ID: id.Ground(), Rad: cfg.Rad})
			}

			reg := metrics.NewRegistry()
			stored := 0
			for _, r := range source.FetchAll(ctx, src, reqs, source.FetchOptions{Workers: cfg.Workers, Logger: log, Metrics: reg}) {
				if r.Err != nil {
					diags = append(diags, fetchDiagnostic(r.ID.Name(), r.Err))
					continue
				}
				if err := bio.PutPayload(dir, r.ID, cfg.Rad, r.CSV, compress); err != nil {
					return fmt.Errorf("storing %s: %w", r.ID.Name(), err)
				}
				stored++
				log.Debug("stored payload", zap.String("nuclide", r.ID.Name()))
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			if !g.quiet {
				printDiagnostics(cmd, diags)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bundled %d of %d %s payloads into %s\n", stored, len(reqs), cfg.Rad, sanitize(dir))
			if stored == 0 {
				return fmt.Errorf("nothing was bundled")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "bundle every nuclide the API lists")
	cmd.Flags().BoolVar(&compress, "compress", true, "snappy-compress stored payloads")

	return cmd
}
