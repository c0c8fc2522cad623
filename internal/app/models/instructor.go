package models

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	PersonInfo
	InstructorID string `json:"instructor_id" db:"instructor_id"` // Immutable once created

	// Relations (populated when needed)
	AssignedCourses []string `json:"assigned_courses,omitempty"` // Names of courses currently assigned to this instructor
}
