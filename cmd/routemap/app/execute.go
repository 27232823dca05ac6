package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/routemap/internal/cmd/output"
	"github.com/agentstation/routemap/pkg/logging"
)

// Execute runs the routemap CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "routemap",
		Short:   "Clean and align airline, airport, route and GDP datasets",
		Version: a.version,
		Long: `Routemap cleans the OpenFlights airline, airport, route and airplane
datasets together with a country GDP table so they can be joined on a
shared country key and on resolvable foreign keys.

Country spellings are reconciled with fuzzy matching, GDP coverage is
aligned with each dataset, duplicate IATA/ICAO codes are nulled, and routes
are repaired and validated against the reference tables.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "stages",
		Title: "Stage Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.routemap.yaml)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.config.Format, "format", "o", "", "output format: table, json, yaml, wide")
	flags.StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.StringVar(&a.config.SourceDir, "source-dir", a.config.SourceDir, "directory holding the raw datasets")
	flags.StringVar(&a.config.CleanDir, "clean-dir", a.config.CleanDir, "directory receiving the cleaned datasets")
	flags.StringVar(&a.config.MappingsDir, "mappings-dir", a.config.MappingsDir, "directory receiving mappings and reports")

	rootCmd.SetVersionTemplate("routemap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	if configFile := mustGetString(cmd, "config"); configFile != "" {
		if err := a.reload(cmd, configFile); err != nil {
			return err
		}
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	return nil
}

// reload re-reads an explicit config file, then reapplies any directory
// flags so they keep precedence over the file.
func (a *App) reload(cmd *cobra.Command, configFile string) error {
	if err := a.config.Reload(configFile); err != nil {
		return err
	}
	for name, dst := range map[string]*string{
		"source-dir":   &a.config.SourceDir,
		"clean-dir":    &a.config.CleanDir,
		"mappings-dir": &a.config.MappingsDir,
	} {
		if cmd.Flags().Changed(name) {
			*dst = mustGetString(cmd, name)
		}
	}
	return nil
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
