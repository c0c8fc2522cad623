package apperrors

import "errors"

// Common errors
var (
	// Storage errors
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateKey        = errors.New("record with this id already exists")
	ErrConstraintViolation = errors.New("storage constraint violated")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidName      = errors.New("name cannot be empty")
	ErrInvalidAge       = errors.New("age must be a non-negative integer")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrInvalidID        = errors.New("id cannot be empty")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrStudentIDExists = errors.New("student ID already exists")
)

// Instructor errors
var (
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrInstructorIDExists = errors.New("instructor ID already exists")
)

// Course errors
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrCourseIDExists = errors.New("course ID already exists")
)

// Registration errors
var (
	ErrAlreadyRegistered = errors.New("student is already registered in this course")
)

// NewNotFoundError creates a new custom error for a missing record with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewDuplicateKeyError creates a new custom error for an id collision with a message
func NewDuplicateKeyError(message string) error {
	return &CustomError{
		Err:     ErrDuplicateKey,
		Message: message,
	}
}

// NewValidationError creates a new custom error for a rejected field with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewConstraintError creates a new custom error for a storage-level rejection with a message
func NewConstraintError(message string) error {
	return &CustomError{
		Err:     ErrConstraintViolation,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsDuplicate reports whether err is any of the id-collision or
// repeated-registration signals. Bulk import skips these per record.
func IsDuplicate(err error) bool {
	return Is(err, ErrDuplicateKey,
		ErrStudentIDExists,
		ErrInstructorIDExists,
		ErrCourseIDExists,
		ErrAlreadyRegistered,
	)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
