// Package stage provides the shared plumbing for commands that run one or
// more pipeline stages and print their results.
package stage

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/routemap"
	"github.com/agentstation/routemap/cmd/routemap/context"
	"github.com/agentstation/routemap/internal/cmd/output"
)

// NewCommand creates a command that runs a single stage with no extra flags.
func NewCommand(appCtx context.Context, stage routemap.Stage, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:     string(stage),
		GroupID: "stages",
		Short:   short,
		Long:    long,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := appCtx.Pipeline()
			if err != nil {
				return err
			}
			return Run(cmd, appCtx, p, stage)
		},
	}
}

// Run executes stages in order on p and prints the results of those that
// completed. The first failure stops the sequence and is returned after the
// completed results are printed.
func Run(cmd *cobra.Command, appCtx context.Context, p routemap.Pipeline, stages ...routemap.Stage) error {
	results := make([]routemap.StageResult, 0, len(stages))

	var runErr error
	for _, s := range stages {
		r, err := p.RunStage(cmd.Context(), s)
		if err != nil {
			runErr = err
			break
		}
		results = append(results, *r)
	}

	if len(results) > 0 {
		if err := Print(cmd, appCtx, results...); err != nil {
			return err
		}
	}
	return runErr
}

// Print writes results to the command's output in the configured format.
func Print(cmd *cobra.Command, appCtx context.Context, results ...routemap.StageResult) error {
	format := output.DetectFormat(appCtx.OutputFormat())
	return output.Stages(cmd.OutOrStdout(), format, results...)
}
