package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgekv-dev/edgekv/config"
)

// NewSchemaCommand creates the schema command, which prints the JSON
// schema for fixture files to stdout.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "schema",
		Short:         "Print the JSON schema for fixture files",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Schema()
			if err != nil {
				return fmt.Errorf("generating schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	return cmd
}
