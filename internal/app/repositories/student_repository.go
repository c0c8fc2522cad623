package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/app/models/dto"
	"github.com/schoolhub/registrar/internal/db"
	"github.com/schoolhub/registrar/internal/pkg/apperrors"
	"github.com/schoolhub/registrar/internal/pkg/dberrors"
	"github.com/schoolhub/registrar/internal/pkg/logger"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *db.SQLiteDB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(database *db.SQLiteDB) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts a new student row
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (student_id, name, age, email)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		student.StudentID, student.Name, student.Age, student.Email)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			logger.Warn().Str("studentID", student.StudentID).Msg("Attempted to create duplicate student")
			return apperrors.ErrStudentIDExists
		}
		if dberrors.IsConstraintError(err) {
			return apperrors.NewConstraintError(fmt.Sprintf("storage rejected student %s: %v", student.StudentID, err))
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Debug().Str("studentID", student.StudentID).Msg("Student created")
	return nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, studentID string) (*models.Student, error) {
	query := `
		SELECT student_id, name, age, email
		FROM students
		WHERE student_id = ?
	`

	var student models.Student
	err := r.db.DB.QueryRowContext(ctx, query, studentID).Scan(
		&student.StudentID,
		&student.Name,
		&student.Age,
		&student.Email,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// Exists checks if a student with the given id exists
func (r *StudentRepository) Exists(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE student_id = ?)`,
		studentID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

// List retrieves all students ordered by name
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT student_id, name, age, email
		FROM students
		ORDER BY name
	`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStudents(rows)
}

// Search retrieves students whose name or id contains the query, or who
// are registered in a course whose name contains it. Matching is
// case-insensitive; results are ordered by name.
func (r *StudentRepository) Search(ctx context.Context, query string) ([]*models.Student, error) {
	stmt := `
		SELECT s.student_id, s.name, s.age, s.email
		FROM students s
		LEFT JOIN registrations r ON r.student_id = s.student_id
		LEFT JOIN courses c ON c.course_id = r.course_id
		WHERE lower(s.name) LIKE ? OR lower(s.student_id) LIKE ? OR lower(c.course_name) LIKE ?
		GROUP BY s.student_id
		ORDER BY s.name
	`

	like := "%" + strings.ToLower(query) + "%"
	rows, err := r.db.DB.QueryContext(ctx, stmt, like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStudents(rows)
}

// Update applies the provided fields to an existing student. Fields left
// nil keep their stored values. Returns ErrStudentNotFound when no row
// matches.
func (r *StudentRepository) Update(ctx context.Context, studentID string, req dto.UpdateStudentRequest) error {
	if req.Empty() {
		return nil
	}

	builder := r.sb.Update("students")
	if req.Name != nil {
		builder = builder.Set("name", *req.Name)
	}
	if req.Age != nil {
		builder = builder.Set("age", *req.Age)
	}
	if req.Email != nil {
		builder = builder.Set("email", *req.Email)
	}
	builder = builder.Where(squirrel.Eq{"student_id": studentID})

	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	res, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if dberrors.IsConstraintError(err) {
			return apperrors.NewConstraintError(fmt.Sprintf("storage rejected update of student %s: %v", studentID, err))
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrStudentNotFound
	}

	logger.Debug().Str("studentID", studentID).Msg("Student updated")
	return nil
}

// Delete removes a student and all registrations referencing it in one
// transaction. Deleting an unknown id is a no-op.
func (r *StudentRepository) Delete(ctx context.Context, studentID string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM registrations WHERE student_id = ?`, studentID); err != nil {
			return fmt.Errorf("error deleting registrations for student: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM students WHERE student_id = ?`, studentID)
		if err != nil {
			return fmt.Errorf("error deleting student: %w", err)
		}

		if rows, err := res.RowsAffected(); err == nil && rows == 0 {
			logger.Warn().Str("studentID", studentID).Msg("Student not found, nothing deleted")
		} else {
			logger.Debug().Str("studentID", studentID).Msg("Student deleted")
		}
		return nil
	})
}

// scanStudents collects student rows
func scanStudents(rows *sql.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.StudentID,
			&student.Name,
			&student.Age,
			&student.Email,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
