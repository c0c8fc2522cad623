package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/app/models/dto"
)

var (
	instructorName  string
	instructorAge   int
	instructorEmail string
)

var instructorCmd = &cobra.Command{
	Use:   "instructor",
	Short: "Manage instructors",
}

var instructorAddCmd = &cobra.Command{
	Use:   "add <instructor-id>",
	Short: "Add a new instructor",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstructorAdd,
}

var instructorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all instructors with their assigned courses",
	Args:  cobra.NoArgs,
	RunE:  runInstructorList,
}

var instructorSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search instructors by name, id, or email",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInstructorSearch,
}

var instructorUpdateCmd = &cobra.Command{
	Use:   "update <instructor-id>",
	Short: "Update an instructor's fields; flags not given are left unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstructorUpdate,
}

var instructorDeleteCmd = &cobra.Command{
	Use:   "delete <instructor-id>",
	Short: "Delete an instructor; its courses stay and become unassigned",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstructorDelete,
}

func runInstructorAdd(cmd *cobra.Command, args []string) error {
	instructor := &models.Instructor{
		PersonInfo:   models.PersonInfo{Name: instructorName, Age: instructorAge, Email: instructorEmail},
		InstructorID: args[0],
	}

	if err := app.InstructorService.CreateInstructor(cmd.Context(), instructor); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Instructor %s added\n", instructor.InstructorID)
	return nil
}

func runInstructorList(cmd *cobra.Command, args []string) error {
	instructors, err := app.InstructorService.ListInstructors(cmd.Context())
	if err != nil {
		return err
	}

	renderInstructors(cmd.OutOrStdout(), instructors)
	return nil
}

func runInstructorSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	instructors, err := app.InstructorService.SearchInstructors(cmd.Context(), query)
	if err != nil {
		return err
	}

	renderInstructors(cmd.OutOrStdout(), instructors)
	return nil
}

func runInstructorUpdate(cmd *cobra.Command, args []string) error {
	var req dto.UpdateInstructorRequest
	if cmd.Flags().Changed("name") {
		req.Name = &instructorName
	}
	if cmd.Flags().Changed("age") {
		req.Age = &instructorAge
	}
	if cmd.Flags().Changed("email") {
		req.Email = &instructorEmail
	}

	if req.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to update")
		return nil
	}

	if err := app.InstructorService.UpdateInstructor(cmd.Context(), args[0], req); err != nil {
		return err
	}

	instructor, err := app.InstructorService.GetInstructor(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	renderInstructors(cmd.OutOrStdout(), []*models.Instructor{instructor})
	return nil
}

func runInstructorDelete(cmd *cobra.Command, args []string) error {
	if err := app.InstructorService.DeleteInstructor(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Instructor %s deleted\n", args[0])
	return nil
}

func init() {
	instructorAddCmd.Flags().StringVar(&instructorName, "name", "", "instructor's display name")
	instructorAddCmd.Flags().IntVar(&instructorAge, "age", 0, "instructor's age")
	instructorAddCmd.Flags().StringVar(&instructorEmail, "email", "", "instructor's email address")

	instructorUpdateCmd.Flags().StringVar(&instructorName, "name", "", "new display name")
	instructorUpdateCmd.Flags().IntVar(&instructorAge, "age", 0, "new age")
	instructorUpdateCmd.Flags().StringVar(&instructorEmail, "email", "", "new email address")

	instructorCmd.AddCommand(instructorAddCmd, instructorListCmd, instructorSearchCmd, instructorUpdateCmd, instructorDeleteCmd)
	rootCmd.AddCommand(instructorCmd)
}
