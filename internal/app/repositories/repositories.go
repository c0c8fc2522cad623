package repositories

import (
	"github.com/schoolhub/registrar/internal/db"
)

// Repositories contains all repository implementations
type Repositories struct {
	StudentRepository      *StudentRepository
	InstructorRepository   *InstructorRepository
	CourseRepository       *CourseRepository
	RegistrationRepository *RegistrationRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(database *db.SQLiteDB) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(database),
		InstructorRepository:   NewInstructorRepository(database),
		CourseRepository:       NewCourseRepository(database),
		RegistrationRepository: NewRegistrationRepository(database),
	}
}
