package leave

import "time"

// Status is the lifecycle state of a leave request. Requests start as
// pending; approved requests may still be revoked (cancelled or rejected)
// after the fact, which reverses their balance consumption.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// CanTransition reports whether from -> to is a permitted status change.
// A same-state transition is a no-op and always permitted.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected || to == StatusCancelled
	case StatusApproved:
		return to == StatusCancelled || to == StatusRejected
	}
	return false
}

// BalanceDelta returns the signed multiplier applied to the request's
// num_days on the target balance for a from -> to transition: +1 when the
// request starts consuming days, -1 when consumption is reversed, 0 when
// the balance is untouched.
func BalanceDelta(from, to Status) float64 {
	if from == to {
		return 0
	}
	if from == StatusPending && to == StatusApproved {
		return 1
	}
	if from == StatusApproved && (to == StatusCancelled || to == StatusRejected) {
		return -1
	}
	return 0
}

// LeaveType entity
type LeaveType struct {
	ID                  int64
	Name                string
	DefaultDaysEntitled *int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// LeaveBalance entity. At most one row exists per (employee, leave type,
// year); used_days never goes below zero in a committed state.
type LeaveBalance struct {
	ID           int64
	EmployeeID   string
	LeaveTypeID  int64
	Year         int
	EntitledDays float64
	UsedDays     float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relationships (for responses)
	LeaveTypeName *string
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          int64
	EmployeeID  string
	LeaveTypeID int64

	Status    Status
	StartDate time.Time
	EndDate   time.Time
	NumDays   float64
	Reason    *string

	RequestDate   time.Time
	ApprovedByID  *string
	ProcessedDate *time.Time
	Comments      *string

	// Relationships (for responses)
	LeaveTypeName *string
}

// BalanceYear is the year a request's consumption is attributed to.
// Cross-year requests count entirely against the year the leave starts.
func (r LeaveRequest) BalanceYear() int {
	return r.StartDate.Year()
}

// Actor is the authenticated caller performing a lifecycle operation.
type Actor struct {
	UserID     string
	EmployeeID string
	Elevated   bool
}
