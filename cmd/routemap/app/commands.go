package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/routemap"
	"github.com/agentstation/routemap/cmd/routemap/cmd/align"
	"github.com/agentstation/routemap/cmd/routemap/cmd/clean"
	"github.com/agentstation/routemap/cmd/routemap/cmd/reconcile"
	"github.com/agentstation/routemap/cmd/routemap/cmd/report"
	"github.com/agentstation/routemap/cmd/routemap/cmd/routes"
	"github.com/agentstation/routemap/cmd/routemap/cmd/run"
	"github.com/agentstation/routemap/cmd/routemap/cmd/stage"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(run.NewCommand(a))
	rootCmd.AddCommand(report.NewCommand(a))

	// Stage commands
	rootCmd.AddCommand(stage.NewCommand(a, routemap.StageExtract,
		"Write the unique countries and cities of the airports dataset",
		`Extract reads airports.csv and writes the sorted, distinct non-null values of
its Country and City columns to the mappings directory.`))
	rootCmd.AddCommand(reconcile.NewCommand(a))
	rootCmd.AddCommand(clean.NewCommand(a))
	rootCmd.AddCommand(align.NewCommand(a))
	rootCmd.AddCommand(stage.NewCommand(a, routemap.StageDedupe,
		"Null duplicated IATA and ICAO codes in the airplanes dataset",
		`Dedupe nulls every occurrence of an IATA or ICAO code that appears on more
than one airplanes row. The first occurrence is not kept, so no airplane
silently wins a shared code.`))
	rootCmd.AddCommand(routes.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("routemap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
