package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolhub/registrar/internal/app/models/dto"
	"github.com/schoolhub/registrar/internal/pkg/apperrors"
)

func TestCreateStudentRejectsBadFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.ErrorIs(t, env.students.CreateStudent(ctx, newStudent("S1", "", 20, "a@x.com")), apperrors.ErrInvalidName)
	require.ErrorIs(t, env.students.CreateStudent(ctx, newStudent("S1", "   ", 20, "a@x.com")), apperrors.ErrInvalidName)
	require.ErrorIs(t, env.students.CreateStudent(ctx, newStudent("S1", "Alice", -1, "a@x.com")), apperrors.ErrInvalidAge)
	require.ErrorIs(t, env.students.CreateStudent(ctx, newStudent("S1", "Alice", 20, "not-an-email")), apperrors.ErrInvalidEmail)
	require.ErrorIs(t, env.students.CreateStudent(ctx, newStudent("", "Alice", 20, "a@x.com")), apperrors.ErrInvalidID)

	// Nothing reached the store.
	students, err := env.students.ListStudents(ctx)
	require.NoError(t, err)
	require.Empty(t, students)
}

func TestCreateStudentTrimsInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.students.CreateStudent(ctx, newStudent("  S1  ", "  Alice  ", 20, "a@x.com")))

	student, err := env.students.GetStudent(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, "S1", student.StudentID)
	require.Equal(t, "Alice", student.Name)
}

func TestCreateStudentDuplicateID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.students.CreateStudent(ctx, newStudent("S1", "Alice", 20, "a@x.com")))
	require.ErrorIs(t, env.students.CreateStudent(ctx, newStudent("S1", "Other", 30, "o@x.com")),
		apperrors.ErrStudentIDExists)
}

func TestGetStudentAttachesCourseNames(t *testing.T) {
	env := newTestEnv(t)
	seedSampleData(t, env)

	student, err := env.students.GetStudent(context.Background(), "S1")
	require.NoError(t, err)
	require.Equal(t, []string{"Algebra"}, student.RegisteredCourses)
}

func TestGetStudentMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.students.GetStudent(context.Background(), "S404")
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestListStudentsAttachesCourseNames(t *testing.T) {
	env := newTestEnv(t)
	seedSampleData(t, env)
	ctx := context.Background()

	require.NoError(t, env.students.CreateStudent(ctx, newStudent("S2", "Brian", 22, "b@x.com")))

	students, err := env.students.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "Alice", students[0].Name)
	require.Equal(t, []string{"Algebra"}, students[0].RegisteredCourses)
	require.Equal(t, "Brian", students[1].Name)
	require.Empty(t, students[1].RegisteredCourses)
}

func TestSearchStudentsBlankQueryListsAll(t *testing.T) {
	env := newTestEnv(t)
	seedSampleData(t, env)
	ctx := context.Background()

	require.NoError(t, env.students.CreateStudent(ctx, newStudent("S2", "Brian", 22, "b@x.com")))

	students, err := env.students.SearchStudents(ctx, "   ")
	require.NoError(t, err)
	require.Len(t, students, 2, "a blank query degrades to a full list")
}

func TestSearchStudentsByCourseName(t *testing.T) {
	env := newTestEnv(t)
	seedSampleData(t, env)
	ctx := context.Background()

	require.NoError(t, env.students.CreateStudent(ctx, newStudent("S2", "Brian", 22, "b@x.com")))

	students, err := env.students.SearchStudents(ctx, "algebra")
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "Alice", students[0].Name)
	require.Equal(t, []string{"Algebra"}, students[0].RegisteredCourses)
}

func TestUpdateStudentValidatesProvidedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.students.CreateStudent(ctx, newStudent("S1", "Alice", 20, "a@x.com")))

	require.ErrorIs(t, env.students.UpdateStudent(ctx, "S1", dto.UpdateStudentRequest{Name: strPtr("  ")}),
		apperrors.ErrInvalidName)
	require.ErrorIs(t, env.students.UpdateStudent(ctx, "S1", dto.UpdateStudentRequest{Age: intPtr(-5)}),
		apperrors.ErrInvalidAge)
	require.ErrorIs(t, env.students.UpdateStudent(ctx, "S1", dto.UpdateStudentRequest{Email: strPtr("nope")}),
		apperrors.ErrInvalidEmail)

	// The record is untouched after the rejected attempts.
	student, err := env.students.GetStudent(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, "Alice", student.Name)
	require.Equal(t, 20, student.Age)
	require.Equal(t, "a@x.com", student.Email)
}

func TestUpdateStudentTrimsName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.students.CreateStudent(ctx, newStudent("S1", "Alice", 20, "a@x.com")))
	require.NoError(t, env.students.UpdateStudent(ctx, "S1", dto.UpdateStudentRequest{Name: strPtr("  Alicia  ")}))

	student, err := env.students.GetStudent(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, "Alicia", student.Name)
}

func TestUpdateStudentUnknown(t *testing.T) {
	env := newTestEnv(t)

	err := env.students.UpdateStudent(context.Background(), "S404", dto.UpdateStudentRequest{Age: intPtr(30)})
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudentRemovesRegistrations(t *testing.T) {
	env := newTestEnv(t)
	seedSampleData(t, env)
	ctx := context.Background()

	require.NoError(t, env.students.DeleteStudent(ctx, "S1"))

	_, err := env.students.GetStudent(ctx, "S1")
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	exists, err := env.repos.RegistrationRepository.Exists(ctx, "S1", "C1")
	require.NoError(t, err)
	require.False(t, exists)

	// The course survives with nobody enrolled.
	course, err := env.courses.GetCourse(ctx, "C1")
	require.NoError(t, err)
	require.Equal(t, "Algebra", course.CourseName)
}

func TestDeleteStudentUnknownIsNoop(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.students.DeleteStudent(context.Background(), "S404"))
}
