package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/app/repositories"
	"github.com/schoolhub/registrar/internal/db"
	"github.com/schoolhub/registrar/internal/testutil"
)

// testEnv wires the full service stack over a fresh schema-initialized
// database, the same way bootstrap does for the binary.
type testEnv struct {
	db            *db.SQLiteDB
	repos         *repositories.Repositories
	students      *StudentService
	instructors   *InstructorService
	courses       *CourseService
	registrations *RegistrationService
	snapshots     *SnapshotService
	exports       *ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := testutil.NewTestDB(t)
	repos := repositories.NewRepositories(database)

	students := NewStudentService(repos.StudentRepository, repos.RegistrationRepository)
	instructors := NewInstructorService(repos.InstructorRepository, repos.CourseRepository)
	courses := NewCourseService(repos.CourseRepository, repos.InstructorRepository)
	registrations := NewRegistrationService(
		repos.RegistrationRepository,
		repos.StudentRepository,
		repos.InstructorRepository,
		repos.CourseRepository,
	)
	snapshots := NewSnapshotService(
		repos.StudentRepository,
		repos.InstructorRepository,
		repos.CourseRepository,
		repos.RegistrationRepository,
	)
	exports := NewExportService(students, instructors, courses, repos.RegistrationRepository, database)

	return &testEnv{
		db:            database,
		repos:         repos,
		students:      students,
		instructors:   instructors,
		courses:       courses,
		registrations: registrations,
		snapshots:     snapshots,
		exports:       exports,
	}
}

func newStudent(id, name string, age int, email string) *models.Student {
	return &models.Student{
		PersonInfo: models.PersonInfo{Name: name, Age: age, Email: email},
		StudentID:  id,
	}
}

func newInstructor(id, name string, age int, email string) *models.Instructor {
	return &models.Instructor{
		PersonInfo:   models.PersonInfo{Name: name, Age: age, Email: email},
		InstructorID: id,
	}
}

func newCourse(id, name string, instructorID *string) *models.Course {
	return &models.Course{CourseID: id, CourseName: name, InstructorID: instructorID}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// seedSampleData loads one student, one instructor, one assigned course
// and one registration linking them.
func seedSampleData(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, env.students.CreateStudent(ctx, newStudent("S1", "Alice", 20, "a@x.com")))
	require.NoError(t, env.instructors.CreateInstructor(ctx, newInstructor("I1", "Bob", 40, "b@x.com")))
	require.NoError(t, env.courses.CreateCourse(ctx, newCourse("C1", "Algebra", strPtr("I1"))))
	require.NoError(t, env.registrations.RegisterStudent(ctx, "S1", "C1"))
}
