package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the edgekv CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "edgekv",
		Short: "edgekv - host-side object store emulator tooling",
		Long:  "Tooling for the edgekv host runtime: adapt guest modules, validate store fixtures, and emit the fixture schema.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewAdaptCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))

	return cmd
}

// configureLogging installs a text slog handler on stderr. Logs go to
// stderr so command output on stdout stays machine-readable.
func configureLogging(opts *RootOptions) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
