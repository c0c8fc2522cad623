package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolhub/registrar/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a small demo data set, skipping records already present",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := seed.CreateDemoData(cmd.Context(), app); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Demo data seeded")
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
