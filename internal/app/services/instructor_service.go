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

// InstructorService handles instructor-related operations
type InstructorService struct {
	instructorRepo *repositories.InstructorRepository
	courseRepo     *repositories.CourseRepository
}

// NewInstructorService creates a new instructor service instance
func NewInstructorService(instructorRepo *repositories.InstructorRepository, courseRepo *repositories.CourseRepository) *InstructorService {
	return &InstructorService{
		instructorRepo: instructorRepo,
		courseRepo:     courseRepo,
	}
}

// CreateInstructor validates and stores a new instructor. Name and id are
// trimmed before storage; the email is checked as given.
func (s *InstructorService) CreateInstructor(ctx context.Context, instructor *models.Instructor) error {
	if instructor == nil {
		return apperrors.NewValidationError("instructor is nil")
	}

	instructor.Name = strings.TrimSpace(instructor.Name)
	instructor.InstructorID = strings.TrimSpace(instructor.InstructorID)

	if err := validation.ValidatePerson(instructor.Name, instructor.Age, instructor.Email); err != nil {
		return err
	}
	if err := validation.ValidateID(instructor.InstructorID); err != nil {
		return err
	}

	return s.instructorRepo.Create(ctx, instructor)
}

// GetInstructor retrieves one instructor with its assigned course names
// attached
func (s *InstructorService) GetInstructor(ctx context.Context, instructorID string) (*models.Instructor, error) {
	instructor, err := s.instructorRepo.GetByID(ctx, strings.TrimSpace(instructorID))
	if err != nil {
		return nil, err
	}

	if err := s.attachCourses(ctx, instructor); err != nil {
		return nil, err
	}

	return instructor, nil
}

// ListInstructors retrieves all instructors ordered by name, each with
// its assigned course names attached
func (s *InstructorService) ListInstructors(ctx context.Context) ([]*models.Instructor, error) {
	instructors, err := s.instructorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving instructors: %w", err)
	}

	for _, instructor := range instructors {
		if err := s.attachCourses(ctx, instructor); err != nil {
			return nil, err
		}
	}

	return instructors, nil
}

// SearchInstructors retrieves instructors matching the query on name,
// id, or email. A blank query returns the full list.
func (s *InstructorService) SearchInstructors(ctx context.Context, query string) ([]*models.Instructor, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListInstructors(ctx)
	}

	instructors, err := s.instructorRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error searching instructors: %w", err)
	}

	for _, instructor := range instructors {
		if err := s.attachCourses(ctx, instructor); err != nil {
			return nil, err
		}
	}

	return instructors, nil
}

// UpdateInstructor validates and applies a partial update. Fields left
// nil are kept; the id itself is immutable.
func (s *InstructorService) UpdateInstructor(ctx context.Context, instructorID string, req dto.UpdateInstructorRequest) error {
	instructorID = strings.TrimSpace(instructorID)
	if err := validation.ValidateID(instructorID); err != nil {
		return err
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validation.ValidateName(trimmed); err != nil {
			return err
		}
		req.Name = &trimmed
	}
	if req.Age != nil {
		if err := validation.ValidateAge(*req.Age); err != nil {
			return err
		}
	}
	if req.Email != nil {
		if err := validation.ValidateEmail(*req.Email); err != nil {
			return err
		}
	}

	return s.instructorRepo.Update(ctx, instructorID, req)
}

// DeleteInstructor removes an instructor. Courses assigned to it stay and
// become unassigned. Unknown ids are a no-op.
func (s *InstructorService) DeleteInstructor(ctx context.Context, instructorID string) error {
	return s.instructorRepo.Delete(ctx, strings.TrimSpace(instructorID))
}

// attachCourses fills the instructor's assigned course names in place
func (s *InstructorService) attachCourses(ctx context.Context, instructor *models.Instructor) error {
	courses, err := s.courseRepo.NamesByInstructor(ctx, instructor.InstructorID)
	if err != nil {
		return fmt.Errorf("error retrieving assigned courses: %w", err)
	}
	instructor.AssignedCourses = courses
	return nil
}
