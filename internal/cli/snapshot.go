package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// defaultSnapshotFile matches the historical default data file name.
const defaultSnapshotFile = "school_data.json"

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save or restore the full state as a JSON document",
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the full state to a JSON snapshot file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSnapshotExport,
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Replay a JSON snapshot into the store, skipping records already present",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSnapshotImport,
}

func snapshotPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultSnapshotFile
}

func runSnapshotExport(cmd *cobra.Command, args []string) error {
	path := snapshotPath(args)

	if err := app.SnapshotService.Export(cmd.Context(), path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written to %s\n", path)
	return nil
}

func runSnapshotImport(cmd *cobra.Command, args []string) error {
	path := snapshotPath(args)

	summary, err := app.SnapshotService.Import(cmd.Context(), path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Snapshot imported from %s\n", path)
	fmt.Fprintf(out, "  students:      %d created, %d skipped\n", summary.StudentsCreated, summary.StudentsSkipped)
	fmt.Fprintf(out, "  instructors:   %d created, %d skipped\n", summary.InstructorsCreated, summary.InstructorsSkipped)
	fmt.Fprintf(out, "  courses:       %d created, %d skipped\n", summary.CoursesCreated, summary.CoursesSkipped)
	fmt.Fprintf(out, "  registrations: %d created, %d skipped\n", summary.RegistrationsCreated, summary.RegistrationsSkipped)
	return nil
}

func init() {
	snapshotCmd.AddCommand(snapshotExportCmd, snapshotImportCmd)
	rootCmd.AddCommand(snapshotCmd)
}
