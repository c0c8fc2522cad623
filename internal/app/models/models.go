package models

// Kind identifies one of the exportable entity kinds
type Kind string

const (
	KindStudents    Kind = "students"
	KindInstructors Kind = "instructors"
	KindCourses     Kind = "courses"
)

// Valid reports whether k names a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindStudents, KindInstructors, KindCourses:
		return true
	}
	return false
}
