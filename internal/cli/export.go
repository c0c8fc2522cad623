package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/pkg/apperrors"
)

var exportKind string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export table views to files",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv [dir]",
	Short: "Write CSV files (one per entity kind) into a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExportCSV,
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	dir := app.Config.Export.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	kinds := []models.Kind{models.KindStudents, models.KindInstructors, models.KindCourses}
	if exportKind != "" {
		kind := models.Kind(exportKind)
		if !kind.Valid() {
			return apperrors.NewValidationError(fmt.Sprintf("unknown export kind %q, want students, instructors, or courses", exportKind))
		}
		kinds = []models.Kind{kind}
	}

	for _, kind := range kinds {
		path := filepath.Join(dir, string(kind)+".csv")
		if err := app.ExportService.ExportCSV(cmd.Context(), kind, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}

var backupCmd = &cobra.Command{
	Use:   "backup [path]",
	Short: "Copy the database to a backup file, timestamped by default",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	dest, err := app.ExportService.Backup(cmd.Context(), target)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", dest)
	return nil
}

func init() {
	exportCSVCmd.Flags().StringVar(&exportKind, "kind", "", "limit export to one kind: students, instructors, or courses")

	exportCmd.AddCommand(exportCSVCmd)
	rootCmd.AddCommand(exportCmd, backupCmd)
}
