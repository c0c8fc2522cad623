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

// InstructorRepository handles database operations for instructors
type InstructorRepository struct {
	db *db.SQLiteDB
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(database *db.SQLiteDB) *InstructorRepository {
	return &InstructorRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts a new instructor row
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (instructor_id, name, age, email)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		instructor.InstructorID, instructor.Name, instructor.Age, instructor.Email)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			logger.Warn().Str("instructorID", instructor.InstructorID).Msg("Attempted to create duplicate instructor")
			return apperrors.ErrInstructorIDExists
		}
		if dberrors.IsConstraintError(err) {
			return apperrors.NewConstraintError(fmt.Sprintf("storage rejected instructor %s: %v", instructor.InstructorID, err))
		}
		return fmt.Errorf("error creating instructor: %w", err)
	}

	logger.Debug().Str("instructorID", instructor.InstructorID).Msg("Instructor created")
	return nil
}

// GetByID retrieves an instructor by id
func (r *InstructorRepository) GetByID(ctx context.Context, instructorID string) (*models.Instructor, error) {
	query := `
		SELECT instructor_id, name, age, email
		FROM instructors
		WHERE instructor_id = ?
	`

	var instructor models.Instructor
	err := r.db.DB.QueryRowContext(ctx, query, instructorID).Scan(
		&instructor.InstructorID,
		&instructor.Name,
		&instructor.Age,
		&instructor.Email,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	return &instructor, nil
}

// Exists checks if an instructor with the given id exists
func (r *InstructorRepository) Exists(ctx context.Context, instructorID string) (bool, error) {
	var exists bool
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM instructors WHERE instructor_id = ?)`,
		instructorID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking instructor existence: %w", err)
	}

	return exists, nil
}

// List retrieves all instructors ordered by name
func (r *InstructorRepository) List(ctx context.Context) ([]*models.Instructor, error) {
	query := `
		SELECT instructor_id, name, age, email
		FROM instructors
		ORDER BY name
	`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInstructors(rows)
}

// Search retrieves instructors whose name, id or email contains the
// query. Matching is case-insensitive; results are ordered by name.
func (r *InstructorRepository) Search(ctx context.Context, query string) ([]*models.Instructor, error) {
	stmt := `
		SELECT instructor_id, name, age, email
		FROM instructors
		WHERE lower(name) LIKE ? OR lower(instructor_id) LIKE ? OR lower(email) LIKE ?
		ORDER BY name
	`

	like := "%" + strings.ToLower(query) + "%"
	rows, err := r.db.DB.QueryContext(ctx, stmt, like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInstructors(rows)
}

// Update applies the provided fields to an existing instructor. Fields
// left nil keep their stored values. Returns ErrInstructorNotFound when
// no row matches.
func (r *InstructorRepository) Update(ctx context.Context, instructorID string, req dto.UpdateInstructorRequest) error {
	if req.Empty() {
		return nil
	}

	builder := r.sb.Update("instructors")
	if req.Name != nil {
		builder = builder.Set("name", *req.Name)
	}
	if req.Age != nil {
		builder = builder.Set("age", *req.Age)
	}
	if req.Email != nil {
		builder = builder.Set("email", *req.Email)
	}
	builder = builder.Where(squirrel.Eq{"instructor_id": instructorID})

	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update instructor SQL")
		return fmt.Errorf("failed to build update instructor query: %w", err)
	}

	res, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if dberrors.IsConstraintError(err) {
			return apperrors.NewConstraintError(fmt.Sprintf("storage rejected update of instructor %s: %v", instructorID, err))
		}
		return fmt.Errorf("error updating instructor: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating instructor: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrInstructorNotFound
	}

	logger.Debug().Str("instructorID", instructorID).Msg("Instructor updated")
	return nil
}

// Delete removes an instructor and clears the instructor reference on
// every course assigned to it, in one transaction. The courses
// themselves are kept. Deleting an unknown id is a no-op.
func (r *InstructorRepository) Delete(ctx context.Context, instructorID string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE courses SET instructor_id = NULL WHERE instructor_id = ?`, instructorID); err != nil {
			return fmt.Errorf("error unassigning courses for instructor: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM instructors WHERE instructor_id = ?`, instructorID)
		if err != nil {
			return fmt.Errorf("error deleting instructor: %w", err)
		}

		if rows, err := res.RowsAffected(); err == nil && rows == 0 {
			logger.Warn().Str("instructorID", instructorID).Msg("Instructor not found, nothing deleted")
		} else {
			logger.Debug().Str("instructorID", instructorID).Msg("Instructor deleted")
		}
		return nil
	})
}

// scanInstructors collects instructor rows
func scanInstructors(rows *sql.Rows) ([]*models.Instructor, error) {
	var instructors []*models.Instructor
	for rows.Next() {
		var instructor models.Instructor
		if err := rows.Scan(
			&instructor.InstructorID,
			&instructor.Name,
			&instructor.Age,
			&instructor.Email,
		); err != nil {
			return nil, err
		}
		instructors = append(instructors, &instructor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return instructors, nil
}
