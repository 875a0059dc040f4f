package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/edgekv-dev/edgekv/config"
	"github.com/edgekv-dev/edgekv/store"
)

// NewValidateCommand creates the validate command. It parses a fixture
// file, checks it against the fixture schema rules, and dry-runs it
// against an in-memory backend so file references are resolved too.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <fixtures.yaml>",
		Short: "Validate a store fixture file",
		Long: `Validate parses a YAML fixture file, runs the declarative field checks,
and applies the fixtures to a throwaway in-memory backend. Applying
catches problems the field checks cannot, such as invalid object keys
and missing data files.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	fixtures, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading fixtures: %w", err)
	}
	slog.Debug("fixtures parsed", "path", path, "stores", len(fixtures.Stores))

	backend := store.NewRegistry()
	if err := fixtures.Apply(backend); err != nil {
		return fmt.Errorf("applying fixtures: %w", err)
	}

	objects := 0
	for _, s := range fixtures.Stores {
		objects += len(s.Objects)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s valid (%d store(s), %d object(s))\n", path, len(fixtures.Stores), objects)
	return nil
}
