package validation

import (
	"strings"

	"github.com/schoolhub/registrar/internal/pkg/apperrors"
)

// Field validators shared by every entity kind. Each returns a typed
// apperrors sentinel so callers can surface one human-readable message
// without attempting the storage operation.

// ValidateName rejects empty or whitespace-only names.
func ValidateName(name string) error {
	if !NewStringValidation(strings.TrimSpace(name)).Validate() {
		return apperrors.ErrInvalidName
	}
	return nil
}

// ValidateAge rejects negative ages. There is no upper bound.
func ValidateAge(age int) error {
	if age < 0 {
		return apperrors.ErrInvalidAge
	}
	return nil
}

// ValidateEmail rejects values that do not start with a local@domain.tld
// shape. The value is checked untrimmed, matching EmailPattern's prefix
// semantics.
func ValidateEmail(email string) error {
	if !NewStringValidation(email).WithPattern(CompiledPatterns.Email).Validate() {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// ValidateID rejects empty or whitespace-only ids. Collisions with an
// existing id are detected by the storage layer, not here.
func ValidateID(id string) error {
	if !NewStringValidation(strings.TrimSpace(id)).Validate() {
		return apperrors.ErrInvalidID
	}
	return nil
}

// ValidatePerson checks the shared name/age/email bundle carried by
// students and instructors.
func ValidatePerson(name string, age int, email string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateAge(age); err != nil {
		return err
	}
	return ValidateEmail(email)
}
