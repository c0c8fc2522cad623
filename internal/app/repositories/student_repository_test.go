package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolhub/registrar/internal/app/models/dto"
	"github.com/schoolhub/registrar/internal/pkg/apperrors"
	"github.com/schoolhub/registrar/internal/testutil"
)

func TestStudentRepositoryCreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testStudent("S1", "Alice", 20, "a@x.com")))

	student, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, "S1", student.StudentID)
	require.Equal(t, "Alice", student.Name)
	require.Equal(t, 20, student.Age)
	require.Equal(t, "a@x.com", student.Email)
}

func TestStudentRepositoryCreateDuplicate(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testStudent("S1", "Alice", 20, "a@x.com")))

	err := repo.Create(ctx, testStudent("S1", "Other", 30, "o@x.com"))
	require.ErrorIs(t, err, apperrors.ErrStudentIDExists)

	student, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, "Alice", student.Name, "the existing record must not be touched")
}

func TestStudentRepositoryGetByIDMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)

	_, err := repo.GetByID(context.Background(), "S404")
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentRepositoryExists(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "S1")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, repo.Create(ctx, testStudent("S1", "Alice", 20, "a@x.com")))

	exists, err = repo.Exists(ctx, "S1")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestStudentRepositoryListOrdersByName(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testStudent("S1", "Carla", 19, "c@x.com")))
	require.NoError(t, repo.Create(ctx, testStudent("S2", "Alice", 20, "a@x.com")))
	require.NoError(t, repo.Create(ctx, testStudent("S3", "Brian", 22, "b@x.com")))

	students, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 3)
	require.Equal(t, "Alice", students[0].Name)
	require.Equal(t, "Brian", students[1].Name)
	require.Equal(t, "Carla", students[2].Name)
}

func TestStudentRepositoryListEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, students)
}

func TestStudentRepositoryUpdatePartial(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testStudent("S1", "Alice", 20, "a@x.com")))

	require.NoError(t, repo.Update(ctx, "S1", dto.UpdateStudentRequest{Age: intPtr(21)}))

	student, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, 21, student.Age)
	require.Equal(t, "Alice", student.Name, "omitted fields keep their stored values")
	require.Equal(t, "a@x.com", student.Email)
}

func TestStudentRepositoryUpdateAllFields(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testStudent("S1", "Alice", 20, "a@x.com")))

	req := dto.UpdateStudentRequest{
		Name:  strPtr("Alicia"),
		Age:   intPtr(21),
		Email: strPtr("alicia@x.com"),
	}
	require.NoError(t, repo.Update(ctx, "S1", req))

	student, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, "Alicia", student.Name)
	require.Equal(t, 21, student.Age)
	require.Equal(t, "alicia@x.com", student.Email)
}

func TestStudentRepositoryUpdateUnknown(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)

	err := repo.Update(context.Background(), "S404", dto.UpdateStudentRequest{Age: intPtr(30)})
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentRepositoryUpdateEmptyRequest(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)

	// With nothing to change no statement runs, even for unknown ids.
	require.NoError(t, repo.Update(context.Background(), "S404", dto.UpdateStudentRequest{}))
}

func TestStudentRepositoryDeleteCascadesRegistrations(t *testing.T) {
	database := testutil.NewTestDB(t)
	students := NewStudentRepository(database)
	courses := NewCourseRepository(database)
	registrations := NewRegistrationRepository(database)
	ctx := context.Background()

	require.NoError(t, students.Create(ctx, testStudent("S1", "Alice", 20, "a@x.com")))
	require.NoError(t, courses.Create(ctx, testCourse("C1", "Algebra", nil)))
	require.NoError(t, registrations.Create(ctx, "S1", "C1"))

	require.NoError(t, students.Delete(ctx, "S1"))

	_, err := students.GetByID(ctx, "S1")
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	require.Equal(t, 0, countRows(t, database, "registrations"),
		"the student's registrations should be removed with it")

	exists, err := courses.Exists(ctx, "C1")
	require.NoError(t, err)
	require.True(t, exists, "the course itself stays")
}

func TestStudentRepositoryDeleteUnknownIsNoop(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewStudentRepository(database)

	require.NoError(t, repo.Delete(context.Background(), "S404"))
}

func TestStudentRepositorySearch(t *testing.T) {
	database := testutil.NewTestDB(t)
	students := NewStudentRepository(database)
	courses := NewCourseRepository(database)
	registrations := NewRegistrationRepository(database)
	ctx := context.Background()

	require.NoError(t, students.Create(ctx, testStudent("S1", "Alice", 20, "alice@x.com")))
	require.NoError(t, students.Create(ctx, testStudent("S2", "Brian", 22, "brian@x.com")))
	require.NoError(t, courses.Create(ctx, testCourse("C1", "Algebra", nil)))
	require.NoError(t, courses.Create(ctx, testCourse("C2", "Advanced Algebra", nil)))
	require.NoError(t, registrations.Create(ctx, "S1", "C1"))
	require.NoError(t, registrations.Create(ctx, "S1", "C2"))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"by name", "alice", []string{"Alice"}},
		{"case insensitive", "ALICE", []string{"Alice"}},
		{"by id", "s2", []string{"Brian"}},
		{"by registered course name", "algebra", []string{"Alice"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := students.Search(ctx, tt.query)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i, name := range tt.want {
				require.Equal(t, name, got[i].Name)
			}
		})
	}
}

func TestStudentRepositorySearchDeduplicates(t *testing.T) {
	database := testutil.NewTestDB(t)
	students := NewStudentRepository(database)
	courses := NewCourseRepository(database)
	registrations := NewRegistrationRepository(database)
	ctx := context.Background()

	require.NoError(t, students.Create(ctx, testStudent("S1", "Alice", 20, "a@x.com")))
	require.NoError(t, courses.Create(ctx, testCourse("C1", "Algebra", nil)))
	require.NoError(t, courses.Create(ctx, testCourse("C2", "Advanced Algebra", nil)))
	require.NoError(t, registrations.Create(ctx, "S1", "C1"))
	require.NoError(t, registrations.Create(ctx, "S1", "C2"))

	// Both registered courses match; the student must still appear once.
	got, err := students.Search(ctx, "algebra")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Alice", got[0].Name)
}
