package user

// Relation classifies a caller relative to a target employee.
type Relation int

const (
	RelationOther Relation = iota
	RelationSelf
	RelationElevated
)

// Relate categorizes the caller against the target employee id. A caller
// acting on their own employee record is self even when their role is
// elevated; operations that accept either check both.
func Relate(caller Identity, targetEmployeeID string) Relation {
	if caller.EmployeeID != "" && caller.EmployeeID == targetEmployeeID {
		return RelationSelf
	}
	if caller.Role.Elevated() {
		return RelationElevated
	}
	return RelationOther
}

// CanReadEmployee reports whether the caller may read data scoped to the
// target employee (requests, balances).
func CanReadEmployee(caller Identity, targetEmployeeID string) bool {
	return Relate(caller, targetEmployeeID) != RelationOther
}
