package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/hoard/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the persisted cache state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigPath: options(cmd).ConfigPath,
				Output:     all,
			})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Also remove the emitted bundle")

	return cmd
}
