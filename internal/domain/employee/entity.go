package employee

import "time"

// Employee is a read-only reference owned by the HR employee module. The
// leave engine only verifies existence and never mutates these rows.
type Employee struct {
	ID        string
	FullName  string
	Email     string
	Position  *string
	HireDate  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
