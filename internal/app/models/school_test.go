package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolhub/registrar/internal/pkg/apperrors"
)

func sampleSchool() *School {
	school := NewSchool()
	school.AddInstructor(&Instructor{
		PersonInfo:      PersonInfo{Name: "Bob", Age: 40, Email: "b@x.com"},
		InstructorID:    "I1",
		AssignedCourses: []string{"Algebra"},
	})
	school.AddStudent(&Student{
		PersonInfo:        PersonInfo{Name: "Alice", Age: 20, Email: "a@x.com"},
		StudentID:         "S1",
		RegisteredCourses: []string{"Algebra"},
	})
	instructorID := "I1"
	school.AddCourse(&Course{
		CourseID:       "C1",
		CourseName:     "Algebra",
		InstructorID:   &instructorID,
		InstructorName: "Bob",
	})
	school.AddEnrollment("S1", "C1")
	return school
}

func TestDocumentShape(t *testing.T) {
	doc := sampleSchool().Document()

	require.Len(t, doc.Students, 1)
	require.Len(t, doc.Instructors, 1)
	require.Len(t, doc.Courses, 1)

	student := doc.Students[0]
	require.Equal(t, "Alice", student.Name)
	require.Equal(t, 20, student.Age)
	require.Equal(t, "a@x.com", student.Email)
	require.Equal(t, "S1", student.StudentID)
	require.Equal(t, []string{"Algebra"}, student.RegisteredCourses)

	instructor := doc.Instructors[0]
	require.Equal(t, "I1", instructor.InstructorID)
	require.Equal(t, []string{"Algebra"}, instructor.AssignedCourses)

	course := doc.Courses[0]
	require.Equal(t, "C1", course.CourseID)
	require.Equal(t, "Algebra", course.CourseName)
	require.NotNil(t, course.Instructor)
	require.Equal(t, PersonRef{ID: "I1", Name: "Bob"}, *course.Instructor)
	require.Equal(t, []PersonRef{{ID: "S1", Name: "Alice"}}, course.EnrolledStudents)
}

func TestDocumentOrdering(t *testing.T) {
	school := NewSchool()
	school.AddStudent(&Student{PersonInfo: PersonInfo{Name: "Zed", Age: 30, Email: "z@x.com"}, StudentID: "S3"})
	school.AddStudent(&Student{PersonInfo: PersonInfo{Name: "Amy", Age: 21, Email: "amy@x.com"}, StudentID: "S2"})
	school.AddStudent(&Student{PersonInfo: PersonInfo{Name: "Amy", Age: 22, Email: "amy2@x.com"}, StudentID: "S1"})

	doc := school.Document()
	require.Equal(t, "S1", doc.Students[0].StudentID, "name ties are broken by id")
	require.Equal(t, "S2", doc.Students[1].StudentID)
	require.Equal(t, "S3", doc.Students[2].StudentID)
}

func TestDocumentDeterministic(t *testing.T) {
	school := sampleSchool()
	school.AddStudent(&Student{PersonInfo: PersonInfo{Name: "Carla", Age: 19, Email: "c@x.com"}, StudentID: "S2"})
	school.AddEnrollment("S2", "C1")

	first, err := json.MarshalIndent(school.Document(), "", "  ")
	require.NoError(t, err)
	second, err := json.MarshalIndent(school.Document(), "", "  ")
	require.NoError(t, err)
	require.Equal(t, string(first), string(second), "repeated exports of the same state must be identical")
}

func TestDocumentDanglingInstructorSerializesAsNull(t *testing.T) {
	school := NewSchool()
	ghost := "I9"
	school.AddCourse(&Course{CourseID: "C1", CourseName: "Algebra", InstructorID: &ghost})

	doc := school.Document()
	require.Nil(t, doc.Courses[0].Instructor)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.Contains(t, string(data), `"instructor":null`)
}

func TestDocumentEmptyListsAreNotNull(t *testing.T) {
	school := NewSchool()
	school.AddStudent(&Student{PersonInfo: PersonInfo{Name: "Alice", Age: 20, Email: "a@x.com"}, StudentID: "S1"})

	data, err := json.Marshal(school.Document())
	require.NoError(t, err)

	payload := string(data)
	require.Contains(t, payload, `"registered_courses":[]`)
	require.Contains(t, payload, `"instructors":[]`)
	require.Contains(t, payload, `"courses":[]`)
	require.NotContains(t, payload, "null")
}

func TestDocumentJSONFieldNames(t *testing.T) {
	data, err := json.MarshalIndent(sampleSchool().Document(), "", "  ")
	require.NoError(t, err)

	payload := string(data)
	require.Contains(t, payload, `"student_id": "S1"`)
	require.Contains(t, payload, `"instructor_id": "I1"`)
	require.Contains(t, payload, `"registered_courses"`)
	require.Contains(t, payload, `"assigned_courses"`)
	require.Contains(t, payload, `"enrolled_students"`)
	require.Contains(t, payload, `"course_name": "Algebra"`)
}

func TestSchoolFromDocumentRoundTrip(t *testing.T) {
	original := sampleSchool().Document()
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded SnapshotDocument
	require.NoError(t, json.Unmarshal(data, &decoded))

	school, err := SchoolFromDocument(&decoded)
	require.NoError(t, err)

	require.Len(t, school.Students, 1)
	require.Len(t, school.Instructors, 1)
	require.Len(t, school.Courses, 1)
	require.Equal(t, []Enrollment{{StudentID: "S1", CourseID: "C1"}}, school.Enrollments)

	course := school.Courses["C1"]
	require.NotNil(t, course.InstructorID)
	require.Equal(t, "I1", *course.InstructorID)
	require.Equal(t, "Bob", course.InstructorName)

	// Rebuilding the document from the decoded aggregate reproduces it.
	require.Equal(t, original, school.Document())
}

func TestSchoolFromDocumentDanglingRefs(t *testing.T) {
	doc := &SnapshotDocument{
		Students: []StudentEntry{{Name: "Alice", Age: 20, Email: "a@x.com", StudentID: "S1"}},
		Courses: []CourseEntry{{
			CourseID:   "C1",
			CourseName: "Algebra",
			Instructor: &PersonRef{ID: "I9", Name: "Ghost"},
			EnrolledStudents: []PersonRef{
				{ID: "S1", Name: "Alice"},
				{ID: "S9", Name: "Missing"},
			},
		}},
	}

	school, err := SchoolFromDocument(doc)
	require.NoError(t, err)

	course := school.Courses["C1"]
	require.Nil(t, course.InstructorID, "a dangling instructor reference resolves to unassigned")
	require.Equal(t, []Enrollment{{StudentID: "S1", CourseID: "C1"}}, school.Enrollments,
		"a dangling student reference is skipped")
}

func TestSchoolFromDocumentRejectsBadFields(t *testing.T) {
	_, err := SchoolFromDocument(&SnapshotDocument{
		Students: []StudentEntry{{Name: "Alice", Age: -3, Email: "a@x.com", StudentID: "S1"}},
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidAge)

	_, err = SchoolFromDocument(&SnapshotDocument{
		Instructors: []InstructorEntry{{Name: "Bob", Age: 40, Email: "not-an-email", InstructorID: "I1"}},
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidEmail)

	_, err = SchoolFromDocument(&SnapshotDocument{
		Courses: []CourseEntry{{CourseID: "C1", CourseName: "   "}},
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidName)

	_, err = SchoolFromDocument(&SnapshotDocument{
		Courses: []CourseEntry{{CourseID: "", CourseName: "Algebra"}},
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidID)
}
