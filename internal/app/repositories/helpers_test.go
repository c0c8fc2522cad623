package repositories

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/db"
)

func testStudent(id, name string, age int, email string) *models.Student {
	return &models.Student{
		PersonInfo: models.PersonInfo{Name: name, Age: age, Email: email},
		StudentID:  id,
	}
}

func testInstructor(id, name string, age int, email string) *models.Instructor {
	return &models.Instructor{
		PersonInfo:   models.PersonInfo{Name: name, Age: age, Email: email},
		InstructorID: id,
	}
}

func testCourse(id, name string, instructorID *string) *models.Course {
	return &models.Course{CourseID: id, CourseName: name, InstructorID: instructorID}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func countRows(t *testing.T, database *db.SQLiteDB, table string) int {
	t.Helper()
	var count int
	err := database.DB.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count)
	require.NoError(t, err, "Failed to count rows in %s", table)
	return count
}
