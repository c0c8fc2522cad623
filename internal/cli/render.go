package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/schoolhub/registrar/internal/app/models"
)

// renderTable prints a tab-aligned table, header row first.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func renderStudents(w io.Writer, students []*models.Student) {
	rows := make([][]string, 0, len(students))
	for _, student := range students {
		rows = append(rows, []string{
			student.Name,
			strconv.Itoa(student.Age),
			student.Email,
			student.StudentID,
			strings.Join(student.RegisteredCourses, ", "),
		})
	}
	renderTable(w, []string{"Name", "Age", "Email", "Student ID", "Registered Courses"}, rows)
}

func renderInstructors(w io.Writer, instructors []*models.Instructor) {
	rows := make([][]string, 0, len(instructors))
	for _, instructor := range instructors {
		rows = append(rows, []string{
			instructor.Name,
			strconv.Itoa(instructor.Age),
			instructor.Email,
			instructor.InstructorID,
			strings.Join(instructor.AssignedCourses, ", "),
		})
	}
	renderTable(w, []string{"Name", "Age", "Email", "Instructor ID", "Assigned Courses"}, rows)
}

func renderCourses(w io.Writer, courses []*models.Course) {
	rows := make([][]string, 0, len(courses))
	for _, course := range courses {
		rows = append(rows, []string{
			course.CourseID,
			course.CourseName,
			course.InstructorName,
		})
	}
	renderTable(w, []string{"Course ID", "Course Name", "Instructor"}, rows)
}
