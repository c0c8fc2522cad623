package models

// PersonInfo is the validated field bundle shared by students and
// instructors. It is embedded by composition; no behavior dispatches on it
// dynamically.
type PersonInfo struct {
	Name  string `json:"name" db:"name"`   // Display name, non-empty after trimming
	Age   int    `json:"age" db:"age"`     // Non-negative, no upper bound
	Email string `json:"email" db:"email"` // Checked against a minimal local@domain.tld prefix shape
}
