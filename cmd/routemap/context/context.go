// Package context provides the application context interface for routemap commands.
//
// Commands accept this interface rather than the concrete App type so that
// they can be tested with MockContext.
//
//	func NewCommand(appCtx context.Context) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            p, err := appCtx.Pipeline()
//	            if err != nil {
//	                return err
//	            }
//	            _, err = p.Run(cmd.Context())
//	            return err
//	        },
//	    }
//	}
package context

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/routemap"
)

// Context provides what commands need from the application.
type Context interface {
	// Pipeline returns the pipeline built from the loaded configuration.
	// Extra options are applied on top and yield a new, uncached instance.
	Pipeline(opts ...routemap.Option) (routemap.Pipeline, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (table, wide, json, yaml)
	// or an empty string to auto-detect.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
