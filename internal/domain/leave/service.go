package leave

import "context"

// LeaveService is the application-facing surface of the leave engine.
// Authorization is enforced at the HTTP layer before these are invoked,
// with one exception: Transition re-checks the self-cancel rule inside
// the transaction because it depends on the request's current status.
type LeaveService interface {
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	GetLeaveType(ctx context.Context, id int64) (LeaveType, error)
	ListLeaveTypes(ctx context.Context, skip, limit int) ([]LeaveType, error)
	UpdateLeaveType(ctx context.Context, req UpdateLeaveTypeRequest) (LeaveType, error)
	DeleteLeaveType(ctx context.Context, id int64) error

	CreateBalance(ctx context.Context, req CreateLeaveBalanceRequest) (LeaveBalance, error)
	ListEmployeeBalances(ctx context.Context, employeeID string, year *int) ([]LeaveBalance, error)
	AdjustBalance(ctx context.Context, req UpdateLeaveBalanceRequest) (LeaveBalance, error)

	SubmitRequest(ctx context.Context, employeeID string, req CreateLeaveRequestRequest) (LeaveRequest, error)
	GetRequest(ctx context.Context, id int64) (LeaveRequest, error)
	ListEmployeeRequests(ctx context.Context, employeeID string, skip, limit int) ([]LeaveRequest, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]LeaveRequest, error)
	Transition(ctx context.Context, requestID int64, actor Actor, target Status, comments *string) (LeaveRequest, error)
}
