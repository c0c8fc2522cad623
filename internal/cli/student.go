package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/app/models/dto"
)

var (
	studentName  string
	studentAge   int
	studentEmail string
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage students",
}

var studentAddCmd = &cobra.Command{
	Use:   "add <student-id>",
	Short: "Add a new student",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudentAdd,
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all students with their registered courses",
	Args:  cobra.NoArgs,
	RunE:  runStudentList,
}

var studentSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search students by name, id, or registered course name",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStudentSearch,
}

var studentUpdateCmd = &cobra.Command{
	Use:   "update <student-id>",
	Short: "Update a student's fields; flags not given are left unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudentUpdate,
}

var studentDeleteCmd = &cobra.Command{
	Use:   "delete <student-id>",
	Short: "Delete a student and its registrations",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudentDelete,
}

func runStudentAdd(cmd *cobra.Command, args []string) error {
	student := &models.Student{
		PersonInfo: models.PersonInfo{Name: studentName, Age: studentAge, Email: studentEmail},
		StudentID:  args[0],
	}

	if err := app.StudentService.CreateStudent(cmd.Context(), student); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Student %s added\n", student.StudentID)
	return nil
}

func runStudentList(cmd *cobra.Command, args []string) error {
	students, err := app.StudentService.ListStudents(cmd.Context())
	if err != nil {
		return err
	}

	renderStudents(cmd.OutOrStdout(), students)
	return nil
}

func runStudentSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	students, err := app.StudentService.SearchStudents(cmd.Context(), query)
	if err != nil {
		return err
	}

	renderStudents(cmd.OutOrStdout(), students)
	return nil
}

func runStudentUpdate(cmd *cobra.Command, args []string) error {
	var req dto.UpdateStudentRequest
	if cmd.Flags().Changed("name") {
		req.Name = &studentName
	}
	if cmd.Flags().Changed("age") {
		req.Age = &studentAge
	}
	if cmd.Flags().Changed("email") {
		req.Email = &studentEmail
	}

	if req.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to update")
		return nil
	}

	if err := app.StudentService.UpdateStudent(cmd.Context(), args[0], req); err != nil {
		return err
	}

	student, err := app.StudentService.GetStudent(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	renderStudents(cmd.OutOrStdout(), []*models.Student{student})
	return nil
}

func runStudentDelete(cmd *cobra.Command, args []string) error {
	if err := app.StudentService.DeleteStudent(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Student %s deleted\n", args[0])
	return nil
}

func init() {
	studentAddCmd.Flags().StringVar(&studentName, "name", "", "student's display name")
	studentAddCmd.Flags().IntVar(&studentAge, "age", 0, "student's age")
	studentAddCmd.Flags().StringVar(&studentEmail, "email", "", "student's email address")

	studentUpdateCmd.Flags().StringVar(&studentName, "name", "", "new display name")
	studentUpdateCmd.Flags().IntVar(&studentAge, "age", 0, "new age")
	studentUpdateCmd.Flags().StringVar(&studentEmail, "email", "", "new email address")

	studentCmd.AddCommand(studentAddCmd, studentListCmd, studentSearchCmd, studentUpdateCmd, studentDeleteCmd)
	rootCmd.AddCommand(studentCmd)
}
