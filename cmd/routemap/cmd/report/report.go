// Package report provides the report command, which summarizes the
// provenance recorded by the last reconcile.
package report

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/routemap/cmd/routemap/context"
	"github.com/agentstation/routemap/internal/cmd/output"
	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/provenance"
	"github.com/agentstation/routemap/pkg/reconcile"
)

// NewCommand creates the report command.
func NewCommand(appCtx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:     "report",
		GroupID: "core",
		Short:   "Show how country names were reconciled",
		Long: `Report reads the provenance file written by reconcile and lists every
accepted mapping with its score, grouped by dataset column. Exact matches
are counted but not listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := appCtx.Pipeline()
			if err != nil {
				return err
			}
			path := filepath.Join(p.Paths().Mappings, reconcile.ProvenanceFileName(constants.GDPSourceLabel))

			r, err := Load(path)
			if err != nil {
				return err
			}

			format := output.DetectFormat(appCtx.OutputFormat())
			switch format {
			case output.FormatTable, output.FormatWide:
				_, err = fmt.Fprint(cmd.OutOrStdout(), r.String())
				return err
			default:
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), r)
			}
		},
	}
}

// Load reads a provenance file and builds its report.
func Load(path string) (*provenance.Report, error) {
	file, err := provenance.Load(path)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, errors.NewMissingFileError(path, nil)
	}
	return provenance.GenerateReport(file.Provenance), nil
}
