// Package clean provides the clean command.
package clean

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/routemap"
	"github.com/agentstation/routemap/cmd/routemap/cmd/stage"
	"github.com/agentstation/routemap/cmd/routemap/context"
)

// NewCommand creates the clean command.
func NewCommand(appCtx context.Context) *cobra.Command {
	var direction string

	cmd := &cobra.Command{
		Use:     "clean",
		GroupID: "stages",
		Short:   "Rewrite country names using the reconciled mappings",
		Long: `Clean applies the mapping tables written by reconcile.

With --direction to-source (the default) the airports and airlines country
columns are rewritten to the GDP spelling and the GDP table is copied as is.
With --direction to-canonical the GDP table is rewritten to the airports
spelling instead.`,
		Example: `  routemap clean
  routemap clean --direction to-canonical`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []routemap.Option
			if cmd.Flags().Changed("direction") {
				d, err := routemap.ParseDirection(direction)
				if err != nil {
					return err
				}
				opts = append(opts, routemap.WithDirection(d))
			}

			p, err := appCtx.Pipeline(opts...)
			if err != nil {
				return err
			}
			return stage.Run(cmd, appCtx, p, routemap.StageClean)
		},
	}

	cmd.Flags().StringVar(&direction, "direction", routemap.DirectionToSource.String(), "mapping direction: to-source or to-canonical")

	return cmd
}
