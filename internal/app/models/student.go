package models

// Student defines the student model based on the 'students' table
type Student struct {
	PersonInfo
	StudentID string `json:"student_id" db:"student_id"` // Immutable once created

	// Relations (populated when needed)
	RegisteredCourses []string `json:"registered_courses,omitempty"` // Names of registered courses, ordered by course name
}
