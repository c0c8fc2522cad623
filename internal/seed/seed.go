package seed

import (
	"context"
	"errors"

	"github.com/schoolhub/registrar/internal/app/models"
	"github.com/schoolhub/registrar/internal/bootstrap"
	"github.com/schoolhub/registrar/internal/pkg/apperrors"
	"github.com/schoolhub/registrar/internal/pkg/logger"
)

func person(name string, age int, email string) models.PersonInfo {
	return models.PersonInfo{Name: name, Age: age, Email: email}
}

// CreateDemoData inserts a small demo data set through the validated
// services. Records already present are skipped, so running it twice is
// harmless.
func CreateDemoData(ctx context.Context, app *bootstrap.App) error {
	logger.Info().Msg("Seeding demo data...")
	var finalErr error

	instructors := []*models.Instructor{
		{PersonInfo: person("Mary Johnson", 45, "mary.johnson@school.edu"), InstructorID: "INS001"},
		{PersonInfo: person("David Chen", 38, "david.chen@school.edu"), InstructorID: "INS002"},
	}
	for _, instructor := range instructors {
		err := app.InstructorService.CreateInstructor(ctx, instructor)
		if err != nil && !apperrors.IsDuplicate(err) {
			logger.Error().Err(err).Str("instructorID", instructor.InstructorID).Msg("Error seeding instructor")
			finalErr = errors.Join(finalErr, err)
		}
	}

	students := []*models.Student{
		{PersonInfo: person("Alice Smith", 20, "alice.smith@school.edu"), StudentID: "STU001"},
		{PersonInfo: person("Brian Lee", 22, "brian.lee@school.edu"), StudentID: "STU002"},
		{PersonInfo: person("Carla Gomez", 19, "carla.gomez@school.edu"), StudentID: "STU003"},
	}
	for _, student := range students {
		err := app.StudentService.CreateStudent(ctx, student)
		if err != nil && !apperrors.IsDuplicate(err) {
			logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error seeding student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	mary, david := "INS001", "INS002"
	courses := []*models.Course{
		{CourseID: "CRS001", CourseName: "Algebra", InstructorID: &mary},
		{CourseID: "CRS002", CourseName: "Physics", InstructorID: &david},
		{CourseID: "CRS003", CourseName: "Chemistry"},
	}
	for _, course := range courses {
		err := app.CourseService.CreateCourse(ctx, course)
		if err != nil && !apperrors.IsDuplicate(err) {
			logger.Error().Err(err).Str("courseID", course.CourseID).Msg("Error seeding course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	registrations := []struct {
		studentID string
		courseID  string
	}{
		{"STU001", "CRS001"},
		{"STU001", "CRS002"},
		{"STU002", "CRS001"},
		{"STU003", "CRS003"},
	}
	for _, reg := range registrations {
		err := app.RegistrationService.RegisterStudent(ctx, reg.studentID, reg.courseID)
		if err != nil && !apperrors.IsDuplicate(err) {
			logger.Error().Err(err).
				Str("studentID", reg.studentID).
				Str("courseID", reg.courseID).
				Msg("Error seeding registration")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		logger.Info().Msg("Demo data seeded")
	}
	return finalErr
}
