package dto

// Partial update requests. A nil field means "not provided" and leaves the
// stored value untouched; a non-nil pointer to a zero value is a provided
// value and overwrites.

// UpdateStudentRequest represents a partial update of a student record
type UpdateStudentRequest struct {
	Name  *string `json:"name,omitempty"`
	Age   *int    `json:"age,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Empty reports whether no field was provided.
func (r UpdateStudentRequest) Empty() bool {
	return r.Name == nil && r.Age == nil && r.Email == nil
}

// UpdateInstructorRequest represents a partial update of an instructor record
type UpdateInstructorRequest struct {
	Name  *string `json:"name,omitempty"`
	Age   *int    `json:"age,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Empty reports whether no field was provided.
func (r UpdateInstructorRequest) Empty() bool {
	return r.Name == nil && r.Age == nil && r.Email == nil
}

// UpdateCourseRequest represents a partial update of a course record. A
// provided empty InstructorID clears the assignment.
type UpdateCourseRequest struct {
	CourseName   *string `json:"course_name,omitempty"`
	InstructorID *string `json:"instructor_id,omitempty"`
}

// Empty reports whether no field was provided.
func (r UpdateCourseRequest) Empty() bool {
	return r.CourseName == nil && r.InstructorID == nil
}
