// Package align provides the align command.
package align

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/routemap"
	"github.com/agentstation/routemap/cmd/routemap/cmd/stage"
	"github.com/agentstation/routemap/cmd/routemap/context"
)

// targets maps an align argument to its stage.
var targets = map[string]routemap.Stage{
	"airports": routemap.StageAlignAirports,
	"airlines": routemap.StageAlignAirlines,
}

// NewCommand creates the align command.
func NewCommand(appCtx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:     "align [airports|airlines]",
		GroupID: "stages",
		Short:   "Align GDP coverage with the airports or airlines countries",
		Long: `Align compares the country coverage of the cleaned GDP table with a
cleaned primary dataset.

airports: primary rows whose country has no GDP row are dropped, and a
          null GDP row is appended for every country GDP lacks.
airlines: primary rows are kept; only the null GDP rows are appended.

Without an argument both alignments run.`,
		ValidArgs: []string{"airports", "airlines"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := Stages(args)
			if err != nil {
				return err
			}
			p, err := appCtx.Pipeline()
			if err != nil {
				return err
			}
			return stage.Run(cmd, appCtx, p, stages...)
		},
	}
}

// Stages returns the stages selected by args.
func Stages(args []string) ([]routemap.Stage, error) {
	if len(args) == 0 {
		return []routemap.Stage{routemap.StageAlignAirports, routemap.StageAlignAirlines}, nil
	}
	s, ok := targets[args[0]]
	if !ok {
		return nil, fmt.Errorf("unknown align target: %s", args[0])
	}
	return []routemap.Stage{s}, nil
}
