// Package routes provides the routes command and its subcommands.
package routes

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/routemap"
	"github.com/agentstation/routemap/cmd/routemap/cmd/stage"
	"github.com/agentstation/routemap/cmd/routemap/context"
)

// NewCommand creates the routes command. Run on its own it executes every
// routes stage in order.
func NewCommand(appCtx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "routes",
		GroupID: "stages",
		Short:   "Repair and validate the routes dataset",
		Long: `Routes runs the route repair and validation stages:

  airlines    - drop routes whose airline ID is the "\N" sentinel
  repair      - resolve airport names to airport IDs
  codeshare   - turn the codeshare column into 1/0
  validate    - keep routes whose foreign keys all resolve

Without a subcommand all four run in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := appCtx.Pipeline()
			if err != nil {
				return err
			}
			return stage.Run(cmd, appCtx, p,
				routemap.StageRemoveUnknownAirlines,
				routemap.StageRepairAirports,
				routemap.StageNormalizeCodeshare,
				routemap.StageValidate,
			)
		},
	}

	cmd.AddCommand(newSubcommand(appCtx, "airlines", routemap.StageRemoveUnknownAirlines,
		"Drop routes with an unknown airline ID"))
	cmd.AddCommand(newSubcommand(appCtx, "repair", routemap.StageRepairAirports,
		"Resolve airport names to airport IDs"))
	cmd.AddCommand(newSubcommand(appCtx, "codeshare", routemap.StageNormalizeCodeshare,
		"Normalize the codeshare column to 1/0"))
	cmd.AddCommand(newSubcommand(appCtx, "validate", routemap.StageValidate,
		"Keep only routes whose foreign keys resolve"))

	return cmd
}

func newSubcommand(appCtx context.Context, use string, s routemap.Stage, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := appCtx.Pipeline()
			if err != nil {
				return err
			}
			return stage.Run(cmd, appCtx, p, s)
		},
	}
}
