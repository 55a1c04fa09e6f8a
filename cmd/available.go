package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eykd/ddata-go/internal/nuclide"
)

// AvailableIO handles I/O for the available command.
type AvailableIO interface {
	ConfigLoader
	SourceOpener
}

// NewAvailableCmd creates the available subcommand, which lists the
// nuclides the configured source holds data for, one element per line.
func NewAvailableCmd(aio AvailableIO, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:          "available [elements...]",
		Short:        "List nuclides with decay data, optionally for some elements only",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			want := map[string]bool{}
			for _, a := range args {
				p, err := nuclide.Parse(a)
				if err != nil {
					return err
				}
				if !p.IsExpansion() {
					return fmt.Errorf("%q is not an element", sanitize(a))
				}
				want[p.Element] = true
			}

			cfg, err := g.load(cmd, aio)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}
			src, err := aio.OpenSource(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("opening data source: %w", err)
			}
			ids, err := src.Available(cmd.Context(), cfg.Rad)
			if err != nil {
				return fmt.Errorf("listing %s: %w", src.Name(), err)
			}

			var (
				order  []string
				groups = map[string][]string{}
			)
			for _, id := range ids {
				if len(want) > 0 && !want[id.Symbol] {
					continue
				}
				if _, ok := groups[id.Symbol]; !ok {
					order = append(order, id.Symbol)
				}
				groups[id.Symbol] = append(groups[id.Symbol], id.Name())
			}
			if len(order) == 0 {
				return fmt.Errorf("no %s data available for the requested elements", cfg.Rad)
			}
			for _, sym := range order {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", sym, strings.Join(groups[sym], " "))
			}
			return nil
		},
	}
}
