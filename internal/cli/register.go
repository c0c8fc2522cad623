package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var assignClear bool

var registerCmd = &cobra.Command{
	Use:   "register <student-id> <course-id>",
	Short: "Register a student in a course",
	Args:  cobra.ExactArgs(2),
	RunE:  runRegister,
}

var assignCmd = &cobra.Command{
	Use:   "assign <course-id> [instructor-id]",
	Short: "Assign an instructor to a course, or clear the assignment",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runAssign,
}

func runRegister(cmd *cobra.Command, args []string) error {
	studentID, courseID := args[0], args[1]

	if err := app.RegistrationService.RegisterStudent(cmd.Context(), studentID, courseID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Student %s registered in course %s\n", studentID, courseID)
	return nil
}

func runAssign(cmd *cobra.Command, args []string) error {
	courseID := args[0]

	instructorID := ""
	switch {
	case assignClear:
		if len(args) == 2 {
			return fmt.Errorf("--clear cannot be combined with an instructor id")
		}
	case len(args) == 2:
		instructorID = args[1]
	default:
		return fmt.Errorf("instructor id required unless --clear is given")
	}

	if err := app.RegistrationService.AssignInstructor(cmd.Context(), courseID, instructorID); err != nil {
		return err
	}

	if instructorID == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Course %s instructor cleared\n", courseID)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Instructor %s assigned to course %s\n", instructorID, courseID)
	}
	return nil
}

func init() {
	assignCmd.Flags().BoolVar(&assignClear, "clear", false, "clear the course's instructor")

	rootCmd.AddCommand(registerCmd, assignCmd)
}
