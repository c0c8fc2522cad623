package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolhub/registrar/internal/pkg/apperrors"
)

func TestRegisterStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.students.CreateStudent(ctx, newStudent("S1", "Alice", 20, "a@x.com")))
	require.NoError(t, env.courses.CreateCourse(ctx, newCourse("C1", "Algebra", nil)))

	require.NoError(t, env.registrations.RegisterStudent(ctx, "S1", "C1"))

	exists, err := env.repos.RegistrationRepository.Exists(ctx, "S1", "C1")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestRegisterStudentUnknownParties(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.students.CreateStudent(ctx, newStudent("S1", "Alice", 20, "a@x.com")))
	require.NoError(t, env.courses.CreateCourse(ctx, newCourse("C1", "Algebra", nil)))

	require.ErrorIs(t, env.registrations.RegisterStudent(ctx, "S404", "C1"), apperrors.ErrStudentNotFound)
	require.ErrorIs(t, env.registrations.RegisterStudent(ctx, "S1", "C404"), apperrors.ErrCourseNotFound)
	require.ErrorIs(t, env.registrations.RegisterStudent(ctx, "", "C1"), apperrors.ErrInvalidID)
	require.ErrorIs(t, env.registrations.RegisterStudent(ctx, "S1", "  "), apperrors.ErrInvalidID)
}

func TestRegisterStudentTwice(t *testing.T) {
	env := newTestEnv(t)
	seedSampleData(t, env)
	ctx := context.Background()

	require.ErrorIs(t, env.registrations.RegisterStudent(ctx, "S1", "C1"), apperrors.ErrAlreadyRegistered)

	// Still exactly one enrollment behind the pair.
	refs, err := env.repos.RegistrationRepository.StudentRefsByCourse(ctx, "C1")
	require.NoError(t, err)
	require.Len(t, refs, 1)
}

func TestAssignInstructor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.instructors.CreateInstructor(ctx, newInstructor("I1", "Bob", 40, "b@x.com")))
	require.NoError(t, env.courses.CreateCourse(ctx, newCourse("C1", "Algebra", nil)))

	require.NoError(t, env.registrations.AssignInstructor(ctx, "C1", "I1"))

	course, err := env.courses.GetCourse(ctx, "C1")
	require.NoError(t, err)
	require.NotNil(t, course.InstructorID)
	require.Equal(t, "I1", *course.InstructorID)
	require.Equal(t, "Bob", course.InstructorName)
}

func TestAssignInstructorReplacesPrevious(t *testing.T) {
	env := newTestEnv(t)
	seedSampleData(t, env)
	ctx := context.Background()

	require.NoError(t, env.instructors.CreateInstructor(ctx, newInstructor("I2", "Mary", 45, "m@x.com")))
	require.NoError(t, env.registrations.AssignInstructor(ctx, "C1", "I2"))

	course, err := env.courses.GetCourse(ctx, "C1")
	require.NoError(t, err)
	require.Equal(t, "I2", *course.InstructorID)
	require.Equal(t, "Mary", course.InstructorName)
}

func TestAssignInstructorUnknownParties(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.instructors.CreateInstructor(ctx, newInstructor("I1", "Bob", 40, "b@x.com")))
	require.NoError(t, env.courses.CreateCourse(ctx, newCourse("C1", "Algebra", nil)))

	require.ErrorIs(t, env.registrations.AssignInstructor(ctx, "C404", "I1"), apperrors.ErrCourseNotFound)
	require.ErrorIs(t, env.registrations.AssignInstructor(ctx, "C1", "I404"), apperrors.ErrInstructorNotFound)
	require.ErrorIs(t, env.registrations.AssignInstructor(ctx, "  ", "I1"), apperrors.ErrInvalidID)
}

func TestAssignInstructorEmptyClearsAssignment(t *testing.T) {
	env := newTestEnv(t)
	seedSampleData(t, env)
	ctx := context.Background()

	require.NoError(t, env.registrations.AssignInstructor(ctx, "C1", ""))

	course, err := env.courses.GetCourse(ctx, "C1")
	require.NoError(t, err)
	require.Nil(t, course.InstructorID)
	require.Equal(t, "", course.InstructorName)
}
