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
	"github.com/schoolhub/registrar/internal/pkg/helpers"
	"github.com/schoolhub/registrar/internal/pkg/logger"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *db.SQLiteDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(database *db.SQLiteDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts a new course row. A nil InstructorID stores NULL.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (course_id, course_name, instructor_id)
		VALUES (?, ?, ?)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		course.CourseID, course.CourseName, helpers.GetNullString(course.InstructorID))
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			logger.Warn().Str("courseID", course.CourseID).Msg("Attempted to create duplicate course")
			return apperrors.ErrCourseIDExists
		}
		if dberrors.IsConstraintError(err) {
			return apperrors.NewConstraintError(fmt.Sprintf("storage rejected course %s: %v", course.CourseID, err))
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	logger.Debug().Str("courseID", course.CourseID).Msg("Course created")
	return nil
}

// GetByID retrieves a course by id
func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	query := `
		SELECT course_id, course_name, instructor_id
		FROM courses
		WHERE course_id = ?
	`

	var course models.Course
	var instructorID sql.NullString
	err := r.db.DB.QueryRowContext(ctx, query, courseID).Scan(
		&course.CourseID,
		&course.CourseName,
		&instructorID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	course.InstructorID = helpers.StringPtr(instructorID)
	return &course, nil
}

// Exists checks if a course with the given id exists
func (r *CourseRepository) Exists(ctx context.Context, courseID string) (bool, error) {
	var exists bool
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE course_id = ?)`,
		courseID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}

	return exists, nil
}

// List retrieves all courses ordered by course name, with the assigned
// instructor's display name resolved (empty string when unassigned).
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT c.course_id, c.course_name, c.instructor_id, COALESCE(i.name, '')
		FROM courses c
		LEFT JOIN instructors i ON i.instructor_id = c.instructor_id
		ORDER BY c.course_name
	`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourseRows(rows)
}

// Search retrieves courses matching the query on course name, id,
// instructor name, or the name of any enrolled student. Matching is
// case-insensitive; results are ordered by course name.
func (r *CourseRepository) Search(ctx context.Context, query string) ([]*models.Course, error) {
	stmt := `
		SELECT c.course_id, c.course_name, c.instructor_id, COALESCE(i.name, '')
		FROM courses c
		LEFT JOIN instructors i ON i.instructor_id = c.instructor_id
		LEFT JOIN registrations r ON r.course_id = c.course_id
		LEFT JOIN students s ON s.student_id = r.student_id
		WHERE lower(c.course_name) LIKE ? OR lower(c.course_id) LIKE ? OR lower(i.name) LIKE ? OR lower(s.name) LIKE ?
		GROUP BY c.course_id
		ORDER BY c.course_name
	`

	like := "%" + strings.ToLower(query) + "%"
	rows, err := r.db.DB.QueryContext(ctx, stmt, like, like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourseRows(rows)
}

// NamesByInstructor retrieves the names of all courses assigned to an
// instructor, ordered by course name.
func (r *CourseRepository) NamesByInstructor(ctx context.Context, instructorID string) ([]string, error) {
	rows, err := r.db.DB.QueryContext(ctx,
		`SELECT course_name FROM courses WHERE instructor_id = ? ORDER BY course_name`,
		instructorID)
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

// Update applies the provided fields to an existing course. Fields left
// nil keep their stored values; a provided empty InstructorID clears the
// assignment to NULL. Returns ErrCourseNotFound when no row matches.
func (r *CourseRepository) Update(ctx context.Context, courseID string, req dto.UpdateCourseRequest) error {
	if req.Empty() {
		return nil
	}

	builder := r.sb.Update("courses")
	if req.CourseName != nil {
		builder = builder.Set("course_name", *req.CourseName)
	}
	if req.InstructorID != nil {
		builder = builder.Set("instructor_id", helpers.GetContentNullString(*req.InstructorID))
	}
	builder = builder.Where(squirrel.Eq{"course_id": courseID})

	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	res, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if dberrors.IsConstraintError(err) {
			return apperrors.NewConstraintError(fmt.Sprintf("storage rejected update of course %s: %v", courseID, err))
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrCourseNotFound
	}

	logger.Debug().Str("courseID", courseID).Msg("Course updated")
	return nil
}

// Delete removes a course and all registrations referencing it in one
// transaction. Deleting an unknown id is a no-op.
func (r *CourseRepository) Delete(ctx context.Context, courseID string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM registrations WHERE course_id = ?`, courseID); err != nil {
			return fmt.Errorf("error deleting registrations for course: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM courses WHERE course_id = ?`, courseID)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}

		if rows, err := res.RowsAffected(); err == nil && rows == 0 {
			logger.Warn().Str("courseID", courseID).Msg("Course not found, nothing deleted")
		} else {
			logger.Debug().Str("courseID", courseID).Msg("Course deleted")
		}
		return nil
	})
}

// scanCourseRows collects course list rows with the instructor name
// resolved by the query's join.
func scanCourseRows(rows *sql.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		var instructorID sql.NullString
		if err := rows.Scan(
			&course.CourseID,
			&course.CourseName,
			&instructorID,
			&course.InstructorName,
		); err != nil {
			return nil, err
		}
		course.InstructorID = helpers.StringPtr(instructorID)
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
