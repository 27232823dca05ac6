// Package reconcile provides the reconcile command.
package reconcile

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/routemap"
	"github.com/agentstation/routemap/cmd/routemap/cmd/stage"
	"github.com/agentstation/routemap/cmd/routemap/context"
	"github.com/agentstation/routemap/pkg/constants"
)

// Flags holds the reconcile command flags.
type Flags struct {
	Threshold    float64
	NoProvenance bool
}

// NewCommand creates the reconcile command.
func NewCommand(appCtx context.Context) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "reconcile",
		GroupID: "stages",
		Short:   "Map GDP country spellings onto the canonical country set",
		Long: `Reconcile fuzzy-matches the country names of the GDP dataset against the
canonical country set written by extract (unique_countries.csv in the
mappings directory). Run extract first.

A name is mapped when its best match scores at or above the threshold.
The mapping table, the unmapped canonical names and a provenance report
are written to the mappings directory. With --no-provenance any provenance
report left by an earlier run is removed.`,
		Example: `  routemap reconcile                    # Use the configured threshold
  routemap reconcile --threshold 85     # Accept looser matches
  routemap reconcile --no-provenance    # Skip the provenance report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := appCtx.Pipeline(Options(cmd, flags)...)
			if err != nil {
				return err
			}
			return stage.Run(cmd, appCtx, p, routemap.StageReconcile)
		},
	}

	cmd.Flags().Float64Var(&flags.Threshold, "threshold", constants.DefaultMatchThreshold, "minimum similarity score (0-100) for a mapping")
	cmd.Flags().BoolVar(&flags.NoProvenance, "no-provenance", false, "do not write the provenance report")

	return cmd
}

// Options returns pipeline options for the flags the user set explicitly.
func Options(cmd *cobra.Command, flags *Flags) []routemap.Option {
	var opts []routemap.Option
	if cmd.Flags().Changed("threshold") {
		opts = append(opts, routemap.WithThreshold(flags.Threshold))
	}
	if flags.NoProvenance {
		opts = append(opts, routemap.WithProvenance(false))
	}
	return opts
}
