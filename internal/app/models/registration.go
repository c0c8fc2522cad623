package models

// Registration defines the join row linking one student to one course
type Registration struct {
	RegistrationID int64  `json:"registration_id" db:"registration_id"` // Auto-assigned by the store
	StudentID      string `json:"student_id" db:"student_id"`
	CourseID       string `json:"course_id" db:"course_id"`
}
