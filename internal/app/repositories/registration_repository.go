package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/db"
	"github.com/schoolhub/registrar/internal/pkg/apperrors"
	"github.com/schoolhub/registrar/internal/pkg/dberrors"
	"github.com/schoolhub/registrar/internal/pkg/logger"
)

// RegistrationRepository handles database operations for the
// student/course join rows
type RegistrationRepository struct {
	db *db.SQLiteDB
	sb squirrel.StatementBuilderType
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(database *db.SQLiteDB) *RegistrationRepository {
	return &RegistrationRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts a registration linking a student to a course. The row id
// is assigned by the store.
func (r *RegistrationRepository) Create(ctx context.Context, studentID, courseID string) error {
	_, err := r.db.DB.ExecContext(ctx,
		`INSERT INTO registrations (student_id, course_id) VALUES (?, ?)`,
		studentID, courseID)
	if err != nil {
		if dberrors.IsConstraintError(err) {
			return apperrors.NewConstraintError(fmt.Sprintf("storage rejected registration of %s in %s: %v", studentID, courseID, err))
		}
		return fmt.Errorf("error creating registration: %w", err)
	}

	logger.Debug().
		Str("studentID", studentID).
		Str("courseID", courseID).
		Msg("Registration created")
	return nil
}

// Exists checks whether a student is already registered in a course
func (r *RegistrationRepository) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	var exists bool
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM registrations WHERE student_id = ? AND course_id = ?)`,
		studentID, courseID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking registration existence: %w", err)
	}

	return exists, nil
}

// CourseNamesByStudent retrieves the names of all courses a student is
// registered in, ordered by course name.
func (r *RegistrationRepository) CourseNamesByStudent(ctx context.Context, studentID string) ([]string, error) {
	query := `
		SELECT c.course_name
		FROM registrations r
		JOIN courses c ON c.course_id = r.course_id
		WHERE r.student_id = ?
		ORDER BY c.course_name
	`

	rows, err := r.db.DB.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

// StudentRefsByCourse retrieves {id, name} references for all students
// registered in a course, ordered by student name.
func (r *RegistrationRepository) StudentRefsByCourse(ctx context.Context, courseID string) ([]models.PersonRef, error) {
	query := `
		SELECT s.student_id, s.name
		FROM registrations r
		JOIN students s ON s.student_id = r.student_id
		WHERE r.course_id = ?
		ORDER BY s.name
	`

	rows, err := r.db.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []models.PersonRef
	for rows.Next() {
		var ref models.PersonRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}
