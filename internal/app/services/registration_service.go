package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/schoolhub/registrar/internal/app/models/dto"
	"github.com/schoolhub/registrar/internal/app/repositories"
	"github.com/schoolhub/registrar/internal/pkg/apperrors"
	"github.com/schoolhub/registrar/internal/pkg/logger"
	"github.com/schoolhub/registrar/internal/pkg/validation"
)

// RegistrationService handles the links between entities: enrolling
// students in courses and assigning instructors to courses
type RegistrationService struct {
	registrationRepo *repositories.RegistrationRepository
	studentRepo      *repositories.StudentRepository
	instructorRepo   *repositories.InstructorRepository
	courseRepo       *repositories.CourseRepository
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(
	registrationRepo *repositories.RegistrationRepository,
	studentRepo *repositories.StudentRepository,
	instructorRepo *repositories.InstructorRepository,
	courseRepo *repositories.CourseRepository,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		studentRepo:      studentRepo,
		instructorRepo:   instructorRepo,
		courseRepo:       courseRepo,
	}
}

// RegisterStudent enrolls a student in a course. Both must exist and the
// pair must not already be registered.
func (s *RegistrationService) RegisterStudent(ctx context.Context, studentID, courseID string) error {
	studentID = strings.TrimSpace(studentID)
	courseID = strings.TrimSpace(courseID)
	if err := validation.ValidateID(studentID); err != nil {
		return err
	}
	if err := validation.ValidateID(courseID); err != nil {
		return err
	}

	exists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return fmt.Errorf("error checking student: %w", err)
	}
	if !exists {
		return apperrors.ErrStudentNotFound
	}

	exists, err = s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	registered, err := s.registrationRepo.Exists(ctx, studentID, courseID)
	if err != nil {
		return fmt.Errorf("error checking registration: %w", err)
	}
	if registered {
		return apperrors.ErrAlreadyRegistered
	}

	if err := s.registrationRepo.Create(ctx, studentID, courseID); err != nil {
		return err
	}

	logger.Info().
		Str("studentID", studentID).
		Str("courseID", courseID).
		Msg("Student registered in course")
	return nil
}

// AssignInstructor sets a course's instructor. The course must exist; a
// non-empty instructor id must name an existing instructor, while an
// empty one clears the assignment.
func (s *RegistrationService) AssignInstructor(ctx context.Context, courseID, instructorID string) error {
	courseID = strings.TrimSpace(courseID)
	instructorID = strings.TrimSpace(instructorID)
	if err := validation.ValidateID(courseID); err != nil {
		return err
	}

	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	if instructorID != "" {
		exists, err = s.instructorRepo.Exists(ctx, instructorID)
		if err != nil {
			return fmt.Errorf("error checking instructor: %w", err)
		}
		if !exists {
			return apperrors.ErrInstructorNotFound
		}
	}

	if err := s.courseRepo.Update(ctx, courseID, dto.UpdateCourseRequest{InstructorID: &instructorID}); err != nil {
		return err
	}

	if instructorID == "" {
		logger.Info().Str("courseID", courseID).Msg("Course instructor cleared")
	} else {
		logger.Info().
			Str("courseID", courseID).
			Str("instructorID", instructorID).
			Msg("Instructor assigned to course")
	}
	return nil
}
