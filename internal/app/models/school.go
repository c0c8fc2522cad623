package models

import (
	"sort"

	"github.com/schoolhub/registrar/internal/pkg/validation"
)

// School is the in-memory aggregate behind the snapshot codec: entities
// keyed by id plus the enrollment pairs linking them. It is a disposable
// projection of the relational store, never the source of truth.
type School struct {
	Students    map[string]*Student
	Instructors map[string]*Instructor
	Courses     map[string]*Course
	Enrollments []Enrollment
}

// Enrollment links one student to one course by id.
type Enrollment struct {
	StudentID string
	CourseID  string
}

// NewSchool returns an empty aggregate.
func NewSchool() *School {
	return &School{
		Students:    make(map[string]*Student),
		Instructors: make(map[string]*Instructor),
		Courses:     make(map[string]*Course),
	}
}

// AddStudent, AddInstructor and AddCourse index an entity by id,
// replacing any previous entry with the same id.
func (s *School) AddStudent(st *Student) { s.Students[st.StudentID] = st }

func (s *School) AddInstructor(in *Instructor) { s.Instructors[in.InstructorID] = in }

func (s *School) AddCourse(c *Course) { s.Courses[c.CourseID] = c }

// AddEnrollment records a student/course link. References are not checked
// here; resolution happens when the document is built.
func (s *School) AddEnrollment(studentID, courseID string) {
	s.Enrollments = append(s.Enrollments, Enrollment{StudentID: studentID, CourseID: courseID})
}

// SchoolFromDocument reconstructs the aggregate from a snapshot document.
// Instructors are built first, then students (their registered-course
// lists restored verbatim), then courses. A course's instructor reference
// is resolved against the already-built instructor map; a dangling
// reference yields an unassigned course, not an error. A dangling
// enrolled-student reference is silently skipped. Field validation
// failures abort the decode so a bad document is rejected before any
// replay begins.
func SchoolFromDocument(doc *SnapshotDocument) (*School, error) {
	school := NewSchool()

	for _, entry := range doc.Instructors {
		if err := validation.ValidatePerson(entry.Name, entry.Age, entry.Email); err != nil {
			return nil, err
		}
		if err := validation.ValidateID(entry.InstructorID); err != nil {
			return nil, err
		}
		school.AddInstructor(&Instructor{
			PersonInfo:      PersonInfo{Name: entry.Name, Age: entry.Age, Email: entry.Email},
			InstructorID:    entry.InstructorID,
			AssignedCourses: append([]string(nil), entry.AssignedCourses...),
		})
	}

	for _, entry := range doc.Students {
		if err := validation.ValidatePerson(entry.Name, entry.Age, entry.Email); err != nil {
			return nil, err
		}
		if err := validation.ValidateID(entry.StudentID); err != nil {
			return nil, err
		}
		school.AddStudent(&Student{
			PersonInfo:        PersonInfo{Name: entry.Name, Age: entry.Age, Email: entry.Email},
			StudentID:         entry.StudentID,
			RegisteredCourses: append([]string(nil), entry.RegisteredCourses...),
		})
	}

	for _, entry := range doc.Courses {
		if err := validation.ValidateID(entry.CourseID); err != nil {
			return nil, err
		}
		if err := validation.ValidateName(entry.CourseName); err != nil {
			return nil, err
		}

		course := &Course{
			CourseID:   entry.CourseID,
			CourseName: entry.CourseName,
		}
		if ref := entry.Instructor; ref != nil {
			if instructor, ok := school.Instructors[ref.ID]; ok {
				id := instructor.InstructorID
				course.InstructorID = &id
				course.InstructorName = instructor.Name
			}
		}
		school.AddCourse(course)

		for _, ref := range entry.EnrolledStudents {
			if _, ok := school.Students[ref.ID]; ok {
				school.AddEnrollment(ref.ID, course.CourseID)
			}
		}
	}

	return school, nil
}

// Document converts the aggregate into its interchange form. Entity lists
// are ordered by display name (course name for courses, ids breaking
// ties) so repeated exports of the same state are identical. The
// denormalized name lists are emitted verbatim.
func (s *School) Document() *SnapshotDocument {
	doc := &SnapshotDocument{
		Students:    make([]StudentEntry, 0, len(s.Students)),
		Instructors: make([]InstructorEntry, 0, len(s.Instructors)),
		Courses:     make([]CourseEntry, 0, len(s.Courses)),
	}

	for _, st := range s.sortedStudents() {
		doc.Students = append(doc.Students, StudentEntry{
			Name:              st.Name,
			Age:               st.Age,
			Email:             st.Email,
			StudentID:         st.StudentID,
			RegisteredCourses: emptyIfNil(st.RegisteredCourses),
		})
	}

	for _, in := range s.sortedInstructors() {
		doc.Instructors = append(doc.Instructors, InstructorEntry{
			Name:            in.Name,
			Age:             in.Age,
			Email:           in.Email,
			InstructorID:    in.InstructorID,
			AssignedCourses: emptyIfNil(in.AssignedCourses),
		})
	}

	for _, c := range s.sortedCourses() {
		entry := CourseEntry{
			CourseID:         c.CourseID,
			CourseName:       c.CourseName,
			EnrolledStudents: s.enrolledRefs(c.CourseID),
		}
		if c.InstructorID != nil {
			// A dangling instructor id serializes as null, same as
			// unassigned.
			if instructor, ok := s.Instructors[*c.InstructorID]; ok {
				entry.Instructor = &PersonRef{ID: instructor.InstructorID, Name: instructor.Name}
			}
		}
		doc.Courses = append(doc.Courses, entry)
	}

	return doc
}

// enrolledRefs resolves the enrollment pairs for one course into {id,
// name} references, ordered by student name. Pairs whose student is not
// in the aggregate are skipped.
func (s *School) enrolledRefs(courseID string) []PersonRef {
	refs := make([]PersonRef, 0)
	for _, e := range s.Enrollments {
		if e.CourseID != courseID {
			continue
		}
		if st, ok := s.Students[e.StudentID]; ok {
			refs = append(refs, PersonRef{ID: st.StudentID, Name: st.Name})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return refs[i].ID < refs[j].ID
	})
	return refs
}

func (s *School) sortedStudents() []*Student {
	students := make([]*Student, 0, len(s.Students))
	for _, st := range s.Students {
		students = append(students, st)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].Name != students[j].Name {
			return students[i].Name < students[j].Name
		}
		return students[i].StudentID < students[j].StudentID
	})
	return students
}

func (s *School) sortedInstructors() []*Instructor {
	instructors := make([]*Instructor, 0, len(s.Instructors))
	for _, in := range s.Instructors {
		instructors = append(instructors, in)
	}
	sort.Slice(instructors, func(i, j int) bool {
		if instructors[i].Name != instructors[j].Name {
			return instructors[i].Name < instructors[j].Name
		}
		return instructors[i].InstructorID < instructors[j].InstructorID
	})
	return instructors
}

func (s *School) sortedCourses() []*Course {
	courses := make([]*Course, 0, len(s.Courses))
	for _, c := range s.Courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].CourseName != courses[j].CourseName {
			return courses[i].CourseName < courses[j].CourseName
		}
		return courses[i].CourseID < courses[j].CourseID
	})
	return courses
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
