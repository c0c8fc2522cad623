package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/app/models/dto"
	"github.com/schoolhub/registrar/internal/app/repositories"
	"github.com/schoolhub/registrar/internal/pkg/apperrors"
	"github.com/schoolhub/registrar/internal/pkg/validation"
)

// CourseService handles course-related operations
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	instructorRepo *repositories.InstructorRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, instructorRepo *repositories.InstructorRepository) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		instructorRepo: instructorRepo,
	}
}

// CreateCourse validates and stores a new course. Name and id are trimmed
// before storage. An instructor id, when given, must name an existing
// instructor; a blank one stores the course unassigned.
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if course == nil {
		return apperrors.NewValidationError("course is nil")
	}

	course.CourseName = strings.TrimSpace(course.CourseName)
	course.CourseID = strings.TrimSpace(course.CourseID)

	if err := validation.ValidateName(course.CourseName); err != nil {
		return err
	}
	if err := validation.ValidateID(course.CourseID); err != nil {
		return err
	}

	if course.InstructorID != nil {
		instructorID := strings.TrimSpace(*course.InstructorID)
		if instructorID == "" {
			course.InstructorID = nil
		} else {
			exists, err := s.instructorRepo.Exists(ctx, instructorID)
			if err != nil {
				return fmt.Errorf("error checking instructor: %w", err)
			}
			if !exists {
				return apperrors.ErrInstructorNotFound
			}
			course.InstructorID = &instructorID
		}
	}

	return s.courseRepo.Create(ctx, course)
}

// GetCourse retrieves one course with the assigned instructor's display
// name attached
func (s *CourseService) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, strings.TrimSpace(courseID))
	if err != nil {
		return nil, err
	}

	if course.InstructorID != nil {
		instructor, err := s.instructorRepo.GetByID(ctx, *course.InstructorID)
		if err == nil && instructor != nil {
			course.InstructorName = instructor.Name
		}
	}

	return course, nil
}

// ListCourses retrieves all courses ordered by course name, instructor
// names resolved
func (s *CourseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	return courses, nil
}

// SearchCourses retrieves courses matching the query on course name, id,
// instructor name, or an enrolled student's name. A blank query returns
// the full list.
func (s *CourseService) SearchCourses(ctx context.Context, query string) ([]*models.Course, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListCourses(ctx)
	}

	courses, err := s.courseRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error searching courses: %w", err)
	}

	return courses, nil
}

// UpdateCourse validates and applies a partial update. Fields left nil
// are kept; the id itself is immutable. A provided non-empty instructor
// id must name an existing instructor; a provided empty one clears the
// assignment.
func (s *CourseService) UpdateCourse(ctx context.Context, courseID string, req dto.UpdateCourseRequest) error {
	courseID = strings.TrimSpace(courseID)
	if err := validation.ValidateID(courseID); err != nil {
		return err
	}

	if req.CourseName != nil {
		trimmed := strings.TrimSpace(*req.CourseName)
		if err := validation.ValidateName(trimmed); err != nil {
			return err
		}
		req.CourseName = &trimmed
	}
	if req.InstructorID != nil {
		instructorID := strings.TrimSpace(*req.InstructorID)
		if instructorID != "" {
			exists, err := s.instructorRepo.Exists(ctx, instructorID)
			if err != nil {
				return fmt.Errorf("error checking instructor: %w", err)
			}
			if !exists {
				return apperrors.ErrInstructorNotFound
			}
		}
		req.InstructorID = &instructorID
	}

	return s.courseRepo.Update(ctx, courseID, req)
}

// DeleteCourse removes a course and its registrations. Unknown ids are a
// no-op.
func (s *CourseService) DeleteCourse(ctx context.Context, courseID string) error {
	return s.courseRepo.Delete(ctx, strings.TrimSpace(courseID))
}
