package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgekv-dev/edgekv/adapt"
)

// NewAdaptCommand creates the adapt command. It rewrites a core wasm
// module so every non-WASI import is routed through the embedded
// adapter, and emits the result as a component.
func NewAdaptCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "adapt <module.wasm>",
		Short: "Adapt a core wasm module for the edgekv host",
		Long: `Adapt rewrites the imports of a core wasm module so that every import
outside wasi_snapshot_preview1 is renamed to "module#name" under that
namespace, then wraps the module and the embedded adapter into a
component. Component inputs are rejected; adapt only accepts core
modules.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdapt(rootOpts, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <module>.component.wasm)")

	return cmd
}

func runAdapt(opts *RootOptions, path, output string) error {
	module, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading module: %w", err)
	}
	slog.Debug("read module", "path", path, "bytes", len(module))

	adapted, err := adapt.Adapt(module)
	if err != nil {
		if errors.Is(err, adapt.ErrComponentInput) {
			return fmt.Errorf("%s is already a component: %w", path, err)
		}
		return fmt.Errorf("adapting module: %w", err)
	}

	if output == "" {
		output = strings.TrimSuffix(path, ".wasm") + ".component.wasm"
	}
	if err := os.WriteFile(output, adapted, 0o644); err != nil {
		return fmt.Errorf("writing component: %w", err)
	}

	slog.Info("module adapted", "input", path, "output", output, "bytes", len(adapted))
	return nil
}
