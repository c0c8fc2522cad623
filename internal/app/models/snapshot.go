package models

// Snapshot document types. Field names are the interchange contract for
// backup/restore and must stay stable across releases; snapshots written
// by older installs are still loadable.

// SnapshotDocument is the full-state interchange document: three top-level
// lists with cross-references resolved by id.
type SnapshotDocument struct {
	Students    []StudentEntry    `json:"students"`
	Instructors []InstructorEntry `json:"instructors"`
	Courses     []CourseEntry     `json:"courses"`
}

// StudentEntry carries a student's scalar fields plus the names of its
// registered courses. The name list is a denormalized convenience, not
// authoritative.
type StudentEntry struct {
	Name              string   `json:"name"`
	Age               int      `json:"age"`
	Email             string   `json:"email"`
	StudentID         string   `json:"student_id"`
	RegisteredCourses []string `json:"registered_courses"`
}

// InstructorEntry carries an instructor's scalar fields plus the names of
// courses assigned to it.
type InstructorEntry struct {
	Name            string   `json:"name"`
	Age             int      `json:"age"`
	Email           string   `json:"email"`
	InstructorID    string   `json:"instructor_id"`
	AssignedCourses []string `json:"assigned_courses"`
}

// CourseEntry carries a course, an embedded reference to its instructor
// (null when unassigned), and embedded references to enrolled students.
type CourseEntry struct {
	CourseID         string      `json:"course_id"`
	CourseName       string      `json:"course_name"`
	Instructor       *PersonRef  `json:"instructor"`
	EnrolledStudents []PersonRef `json:"enrolled_students"`
}

// PersonRef is a compact {id, name} reference embedded where a full join
// would be redundant.
type PersonRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
