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

// StudentService handles student-related operations
type StudentService struct {
	studentRepo      *repositories.StudentRepository
	registrationRepo *repositories.RegistrationRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository, registrationRepo *repositories.RegistrationRepository) *StudentService {
	return &StudentService{
		studentRepo:      studentRepo,
		registrationRepo: registrationRepo,
	}
}

// CreateStudent validates and stores a new student. Name and id are
// trimmed before storage; the email is checked as given.
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) error {
	if student == nil {
		return apperrors.NewValidationError("student is nil")
	}

	student.Name = strings.TrimSpace(student.Name)
	student.StudentID = strings.TrimSpace(student.StudentID)

	if err := validation.ValidatePerson(student.Name, student.Age, student.Email); err != nil {
		return err
	}
	if err := validation.ValidateID(student.StudentID); err != nil {
		return err
	}

	return s.studentRepo.Create(ctx, student)
}

// GetStudent retrieves one student with its registered course names
// attached
func (s *StudentService) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, strings.TrimSpace(studentID))
	if err != nil {
		return nil, err
	}

	if err := s.attachCourses(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// ListStudents retrieves all students ordered by name, each with its
// registered course names attached
func (s *StudentService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	for _, student := range students {
		if err := s.attachCourses(ctx, student); err != nil {
			return nil, err
		}
	}

	return students, nil
}

// SearchStudents retrieves students matching the query on name, id, or a
// registered course's name. A blank query returns the full list.
func (s *StudentService) SearchStudents(ctx context.Context, query string) ([]*models.Student, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListStudents(ctx)
	}

	students, err := s.studentRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error searching students: %w", err)
	}

	for _, student := range students {
		if err := s.attachCourses(ctx, student); err != nil {
			return nil, err
		}
	}

	return students, nil
}

// UpdateStudent validates and applies a partial update. Fields left nil
// are kept; the id itself is immutable.
func (s *StudentService) UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest) error {
	studentID = strings.TrimSpace(studentID)
	if err := validation.ValidateID(studentID); err != nil {
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

	return s.studentRepo.Update(ctx, studentID, req)
}

// DeleteStudent removes a student and its registrations. Unknown ids are
// a no-op.
func (s *StudentService) DeleteStudent(ctx context.Context, studentID string) error {
	return s.studentRepo.Delete(ctx, strings.TrimSpace(studentID))
}

// attachCourses fills the student's registered course names in place
func (s *StudentService) attachCourses(ctx context.Context, student *models.Student) error {
	courses, err := s.registrationRepo.CourseNamesByStudent(ctx, student.StudentID)
	if err != nil {
		return fmt.Errorf("error retrieving registered courses: %w", err)
	}
	student.RegisteredCourses = courses
	return nil
}
