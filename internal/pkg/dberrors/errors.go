package dberrors

import (
	"errors"

	"github.com/ncruces/go-sqlite3"
)

// IsDuplicateKeyError checks if the error is a SQLite primary key or
// unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	var serr *sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.ExtendedCode()
	return code == sqlite3.CONSTRAINT_PRIMARYKEY ||
		code == sqlite3.CONSTRAINT_UNIQUE ||
		code == sqlite3.CONSTRAINT_ROWID
}

// IsCheckViolationError checks if the error is a SQLite CHECK constraint
// violation, e.g. a negative age reaching the table backstop.
func IsCheckViolationError(err error) bool {
	var serr *sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode() == sqlite3.CONSTRAINT_CHECK
}

// IsConstraintError checks if the error is any SQLite constraint violation.
func IsConstraintError(err error) bool {
	var serr *sqlite3.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.CONSTRAINT
}
