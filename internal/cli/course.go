package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/app/models/dto"
)

var (
	courseName       string
	courseInstructor string
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Manage courses",
}

var courseAddCmd = &cobra.Command{
	Use:   "add <course-id>",
	Short: "Add a new course, optionally assigned to an instructor",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseAdd,
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all courses with their instructors",
	Args:  cobra.NoArgs,
	RunE:  runCourseList,
}

var courseSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search courses by name, id, instructor name, or enrolled student name",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCourseSearch,
}

var courseUpdateCmd = &cobra.Command{
	Use:   "update <course-id>",
	Short: "Update a course; --instructor \"\" clears the assignment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseUpdate,
}

var courseDeleteCmd = &cobra.Command{
	Use:   "delete <course-id>",
	Short: "Delete a course and its registrations",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseDelete,
}

func runCourseAdd(cmd *cobra.Command, args []string) error {
	course := &models.Course{
		CourseID:   args[0],
		CourseName: courseName,
	}
	if cmd.Flags().Changed("instructor") {
		course.InstructorID = &courseInstructor
	}

	if err := app.CourseService.CreateCourse(cmd.Context(), course); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Course %s added\n", course.CourseID)
	return nil
}

func runCourseList(cmd *cobra.Command, args []string) error {
	courses, err := app.CourseService.ListCourses(cmd.Context())
	if err != nil {
		return err
	}

	renderCourses(cmd.OutOrStdout(), courses)
	return nil
}

func runCourseSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	courses, err := app.CourseService.SearchCourses(cmd.Context(), query)
	if err != nil {
		return err
	}

	renderCourses(cmd.OutOrStdout(), courses)
	return nil
}

func runCourseUpdate(cmd *cobra.Command, args []string) error {
	var req dto.UpdateCourseRequest
	if cmd.Flags().Changed("name") {
		req.CourseName = &courseName
	}
	if cmd.Flags().Changed("instructor") {
		req.InstructorID = &courseInstructor
	}

	if req.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to update")
		return nil
	}

	if err := app.CourseService.UpdateCourse(cmd.Context(), args[0], req); err != nil {
		return err
	}

	course, err := app.CourseService.GetCourse(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	renderCourses(cmd.OutOrStdout(), []*models.Course{course})
	return nil
}

func runCourseDelete(cmd *cobra.Command, args []string) error {
	if err := app.CourseService.DeleteCourse(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Course %s deleted\n", args[0])
	return nil
}

func init() {
	courseAddCmd.Flags().StringVar(&courseName, "name", "", "course's display name")
	courseAddCmd.Flags().StringVar(&courseInstructor, "instructor", "", "id of the instructor teaching the course")

	courseUpdateCmd.Flags().StringVar(&courseName, "name", "", "new course name")
	courseUpdateCmd.Flags().StringVar(&courseInstructor, "instructor", "", "new instructor id, empty to clear")

	courseCmd.AddCommand(courseAddCmd, courseListCmd, courseSearchCmd, courseUpdateCmd, courseDeleteCmd)
	rootCmd.AddCommand(courseCmd)
}
