package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/app/repositories"
	"github.com/schoolhub/registrar/internal/pkg/apperrors"
	"github.com/schoolhub/registrar/internal/pkg/filestore"
	"github.com/schoolhub/registrar/internal/pkg/logger"
)

// SnapshotService serializes the full store state to a JSON document and
// replays such documents back into the store
type SnapshotService struct {
	studentRepo      *repositories.StudentRepository
	instructorRepo   *repositories.InstructorRepository
	courseRepo       *repositories.CourseRepository
	registrationRepo *repositories.RegistrationRepository
}

// NewSnapshotService creates a new snapshot service instance
func NewSnapshotService(
	studentRepo *repositories.StudentRepository,
	instructorRepo *repositories.InstructorRepository,
	courseRepo *repositories.CourseRepository,
	registrationRepo *repositories.RegistrationRepository,
) *SnapshotService {
	return &SnapshotService{
		studentRepo:      studentRepo,
		instructorRepo:   instructorRepo,
		courseRepo:       courseRepo,
		registrationRepo: registrationRepo,
	}
}

// ImportSummary reports what a snapshot replay wrote and what it skipped
// as already present.
type ImportSummary struct {
	StudentsCreated      int
	StudentsSkipped      int
	InstructorsCreated   int
	InstructorsSkipped   int
	CoursesCreated       int
	CoursesSkipped       int
	RegistrationsCreated int
	RegistrationsSkipped int
}

// BuildSchool loads the entire store into an in-memory aggregate,
// relation name lists attached.
func (s *SnapshotService) BuildSchool(ctx context.Context) (*models.School, error) {
	school := models.NewSchool()

	instructors, err := s.instructorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving instructors: %w", err)
	}
	for _, instructor := range instructors {
		names, err := s.courseRepo.NamesByInstructor(ctx, instructor.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving assigned courses: %w", err)
		}
		instructor.AssignedCourses = names
		school.AddInstructor(instructor)
	}

	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	for _, student := range students {
		names, err := s.registrationRepo.CourseNamesByStudent(ctx, student.StudentID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving registered courses: %w", err)
		}
		student.RegisteredCourses = names
		school.AddStudent(student)
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	for _, course := range courses {
		school.AddCourse(course)

		refs, err := s.registrationRepo.StudentRefsByCourse(ctx, course.CourseID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving enrolled students: %w", err)
		}
		for _, ref := range refs {
			school.AddEnrollment(ref.ID, course.CourseID)
		}
	}

	return school, nil
}

// Export writes the full store state to path as an indented JSON
// document. Repeated exports of unchanged state produce identical bytes.
func (s *SnapshotService) Export(ctx context.Context, path string) error {
	school, err := s.BuildSchool(ctx)
	if err != nil {
		return err
	}

	doc := school.Document()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding snapshot: %w", err)
	}

	if err := filestore.WriteAtomic(path, data); err != nil {
		return err
	}

	logger.Info().
		Str("path", path).
		Int("students", len(doc.Students)).
		Int("instructors", len(doc.Instructors)).
		Int("courses", len(doc.Courses)).
		Msg("Snapshot written")
	return nil
}

// Import reads a snapshot document from path and replays it into the
// store. A document that fails validation is rejected before anything is
// written. Records whose ids are already present are skipped, so
// importing into a non-empty store merges. Any other storage failure
// aborts the replay; writes made up to that point remain.
func (s *SnapshotService) Import(ctx context.Context, path string) (*ImportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	var doc models.SnapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing snapshot: %w", err)
	}

	school, err := models.SchoolFromDocument(&doc)
	if err != nil {
		return nil, fmt.Errorf("snapshot rejected: %w", err)
	}

	summary, err := s.replay(ctx, school, &doc)
	if err != nil {
		return summary, err
	}

	logger.Info().
		Str("path", path).
		Int("studentsCreated", summary.StudentsCreated).
		Int("instructorsCreated", summary.InstructorsCreated).
		Int("coursesCreated", summary.CoursesCreated).
		Int("registrationsCreated", summary.RegistrationsCreated).
		Msg("Snapshot imported")
	return summary, nil
}

// replay writes the decoded aggregate into the store. Document order
// drives iteration so runs are deterministic; the aggregate supplies the
// resolved entities and enrollment pairs.
func (s *SnapshotService) replay(ctx context.Context, school *models.School, doc *models.SnapshotDocument) (*ImportSummary, error) {
	summary := &ImportSummary{}

	for _, entry := range doc.Instructors {
		err := s.instructorRepo.Create(ctx, school.Instructors[entry.InstructorID])
		switch {
		case err == nil:
			summary.InstructorsCreated++
		case apperrors.IsDuplicate(err):
			summary.InstructorsSkipped++
		default:
			return summary, err
		}
	}

	for _, entry := range doc.Students {
		err := s.studentRepo.Create(ctx, school.Students[entry.StudentID])
		switch {
		case err == nil:
			summary.StudentsCreated++
		case apperrors.IsDuplicate(err):
			summary.StudentsSkipped++
		default:
			return summary, err
		}
	}

	for _, entry := range doc.Courses {
		err := s.courseRepo.Create(ctx, school.Courses[entry.CourseID])
		switch {
		case err == nil:
			summary.CoursesCreated++
		case apperrors.IsDuplicate(err):
			summary.CoursesSkipped++
		default:
			return summary, err
		}
	}

	// The registrations table assigns its own row ids, so replaying the
	// same pair twice would not collide there. Presence is checked
	// explicitly instead.
	for _, enrollment := range school.Enrollments {
		registered, err := s.registrationRepo.Exists(ctx, enrollment.StudentID, enrollment.CourseID)
		if err != nil {
			return summary, err
		}
		if registered {
			summary.RegistrationsSkipped++
			continue
		}
		if err := s.registrationRepo.Create(ctx, enrollment.StudentID, enrollment.CourseID); err != nil {
			return summary, err
		}
		summary.RegistrationsCreated++
	}

	return summary, nil
}
