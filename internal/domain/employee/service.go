package employee

import "context"

// EmployeeService - read-only directory lookups
type EmployeeService interface {
	GetEmployee(ctx context.Context, id string) (Employee, error)
}
