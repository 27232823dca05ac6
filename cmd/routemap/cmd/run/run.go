// Package run provides the run command, which executes the whole pipeline
// or a contiguous slice of it.
package run

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/routemap"
	"github.com/agentstation/routemap/cmd/routemap/cmd/stage"
	"github.com/agentstation/routemap/cmd/routemap/context"
	"github.com/agentstation/routemap/internal/matcher"
	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
)

// Flags holds the run command flags.
type Flags struct {
	From      string
	To        string
	Only      []string
	Threshold float64
	Direction string
}

// NewCommand creates the run command.
func NewCommand(appCtx context.Context) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "core",
		Short:   "Run the cleaning pipeline",
		Long: `Run executes the pipeline stages in order:

  ` + stageList() + `

Each stage reads the files written by the stages before it, so the run stops
at the first stage that fails. Use --from and --to to run part of the
pipeline against artifacts from an earlier run.`,
		Example: `  routemap run                                  # Run every stage
  routemap run --from clean                     # Rerun from clean onwards
  routemap run --to reconcile --threshold 85    # Preview mappings only
  routemap run --only 'align-*,dedupe'          # Run matching stages only
  routemap run -o json > report.json            # Machine-readable summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stages, err := Select(flags.From, flags.To, flags.Only...)
			if err != nil {
				return err
			}

			opts, err := options(cmd, flags)
			if err != nil {
				return err
			}
			p, err := appCtx.Pipeline(opts...)
			if err != nil {
				return err
			}

			return stage.Run(cmd, appCtx, p, stages...)
		},
	}

	cmd.Flags().StringVar(&flags.From, "from", "", "first stage to run")
	cmd.Flags().StringVar(&flags.To, "to", "", "last stage to run")
	cmd.Flags().StringSliceVar(&flags.Only, "only", nil, "run only stages matching these glob or regex patterns")
	cmd.Flags().Float64Var(&flags.Threshold, "threshold", constants.DefaultMatchThreshold, "minimum similarity score (0-100) for a mapping")
	cmd.Flags().StringVar(&flags.Direction, "direction", routemap.DirectionToSource.String(), "mapping direction: to-source or to-canonical")

	return cmd
}

// Select returns the stages between from and to inclusive that match any of
// the only patterns. Empty bounds mean the first and last stage, and no
// patterns match every stage.
func Select(from, to string, only ...string) ([]routemap.Stage, error) {
	all := routemap.Stages()
	start, end := 0, len(all)-1

	if from != "" {
		i, err := indexOf(all, from)
		if err != nil {
			return nil, err
		}
		start = i
	}
	if to != "" {
		i, err := indexOf(all, to)
		if err != nil {
			return nil, err
		}
		end = i
	}
	if start > end {
		return nil, errors.NewValidationError("from", from, fmt.Sprintf("stage %s runs after %s", from, to))
	}

	patterns, err := matcher.NewSet(only...)
	if err != nil {
		return nil, errors.NewValidationError("only", only, err.Error())
	}
	var selected []routemap.Stage
	for _, s := range all[start : end+1] {
		if patterns.Match(string(s)) {
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		return nil, errors.NewValidationError("only", only, "no stage matches")
	}
	return selected, nil
}

func indexOf(stages []routemap.Stage, name string) (int, error) {
	s, ok := routemap.ParseStage(name)
	if !ok {
		return 0, errors.NewValidationError("stage", name, "must be one of: "+stageList())
	}
	for i := range stages {
		if stages[i] == s {
			return i, nil
		}
	}
	return 0, errors.NewValidationError("stage", name, "not in pipeline")
}

func options(cmd *cobra.Command, flags *Flags) ([]routemap.Option, error) {
	var opts []routemap.Option
	if cmd.Flags().Changed("threshold") {
		opts = append(opts, routemap.WithThreshold(flags.Threshold))
	}
	if cmd.Flags().Changed("direction") {
		d, err := routemap.ParseDirection(flags.Direction)
		if err != nil {
			return nil, err
		}
		opts = append(opts, routemap.WithDirection(d))
	}
	return opts, nil
}

func stageList() string {
	names := make([]string, 0, len(routemap.Stages()))
	for _, s := range routemap.Stages() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
