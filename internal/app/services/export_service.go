package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/app/repositories"
	"github.com/schoolhub/registrar/internal/db"
	"github.com/schoolhub/registrar/internal/pkg/apperrors"
	"github.com/schoolhub/registrar/internal/pkg/filestore"
	"github.com/schoolhub/registrar/internal/pkg/logger"
)

// ExportService writes table views to CSV files and drives database
// backups
type ExportService struct {
	studentService    *StudentService
	instructorService *InstructorService
	courseService     *CourseService
	registrationRepo  *repositories.RegistrationRepository
	database          *db.SQLiteDB
}

// NewExportService creates a new export service instance
func NewExportService(
	studentService *StudentService,
	instructorService *InstructorService,
	courseService *CourseService,
	registrationRepo *repositories.RegistrationRepository,
	database *db.SQLiteDB,
) *ExportService {
	return &ExportService{
		studentService:    studentService,
		instructorService: instructorService,
		courseService:     courseService,
		registrationRepo:  registrationRepo,
		database:          database,
	}
}

// ExportCSV writes all rows of one entity kind to path, header row first.
// The columns mirror the list views, relation names joined with ", ".
func (s *ExportService) ExportCSV(ctx context.Context, kind models.Kind, path string) error {
	var records [][]string
	var err error

	switch kind {
	case models.KindStudents:
		records, err = s.studentRecords(ctx)
	case models.KindInstructors:
		records, err = s.instructorRecords(ctx)
	case models.KindCourses:
		records, err = s.courseRecords(ctx)
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown export kind %q", kind))
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("error encoding csv: %w", err)
	}

	if err := filestore.WriteAtomic(path, buf.Bytes()); err != nil {
		return err
	}

	logger.Info().
		Str("kind", string(kind)).
		Str("path", path).
		Int("rows", len(records)-1).
		Msg("CSV exported")
	return nil
}

// Backup copies the database to target, defaulting to a timestamped name
// next to the database file. Returns the written path.
func (s *ExportService) Backup(ctx context.Context, target string) (string, error) {
	return s.database.Backup(ctx, target)
}

func (s *ExportService) studentRecords(ctx context.Context) ([][]string, error) {
	students, err := s.studentService.ListStudents(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"Name", "Age", "Email", "Student ID", "Registered Courses"}}
	for _, student := range students {
		records = append(records, []string{
			student.Name,
			strconv.Itoa(student.Age),
			student.Email,
			student.StudentID,
			strings.Join(student.RegisteredCourses, ", "),
		})
	}
	return records, nil
}

func (s *ExportService) instructorRecords(ctx context.Context) ([][]string, error) {
	instructors, err := s.instructorService.ListInstructors(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"Name", "Age", "Email", "Instructor ID"}}
	for _, instructor := range instructors {
		records = append(records, []string{
			instructor.Name,
			strconv.Itoa(instructor.Age),
			instructor.Email,
			instructor.InstructorID,
		})
	}
	return records, nil
}

func (s *ExportService) courseRecords(ctx context.Context) ([][]string, error) {
	courses, err := s.courseService.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"Course ID", "Course Name", "Instructor", "Enrolled Students"}}
	for _, course := range courses {
		refs, err := s.registrationRepo.StudentRefsByCourse(ctx, course.CourseID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving enrolled students: %w", err)
		}

		names := make([]string, 0, len(refs))
		for _, ref := range refs {
			names = append(names, ref.Name)
		}

		records = append(records, []string{
			course.CourseID,
			course.CourseName,
			course.InstructorName,
			strings.Join(names, ", "),
		})
	}
	return records, nil
}
