package employee

import "context"

// EmployeeRepository - read-only access to the employees table
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Exists(ctx context.Context, id string) (bool, error)
}
