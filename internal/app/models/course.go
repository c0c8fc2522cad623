package models

// Course represents a course and its optional instructor assignment.
type Course struct {
	CourseID     string  `json:"course_id" db:"course_id"`
	CourseName   string  `json:"course_name" db:"course_name"`
	InstructorID *string `json:"instructor_id,omitempty" db:"instructor_id"` // Nullable

	// Relations (populated when needed)
	InstructorName string `json:"instructor_name,omitempty"` // Display name, empty when unassigned
}
