package leave

import (
	"context"
	"time"
)

// TxManager runs fn inside a single database transaction. The context
// passed to fn carries the transaction; repositories resolve it through
// their querier, so every store call inside fn joins the same transaction
// and the whole unit commits or rolls back together.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// LeaveTypeRepository - interface for the leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id int64) (LeaveType, error)
	List(ctx context.Context, skip, limit int) ([]LeaveType, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest) error
	Delete(ctx context.Context, id int64) error
}

// LeaveBalanceRepository - interface for the leave_balances table.
// IncrementUsed and DecrementUsed are reserved for the lifecycle
// coordinator; DecrementUsed clamps used_days at zero.
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByID(ctx context.Context, id int64) (LeaveBalance, error)
	GetForKey(ctx context.Context, employeeID string, leaveTypeID int64, year int) (LeaveBalance, error)
	GetForKeyForUpdate(ctx context.Context, employeeID string, leaveTypeID int64, year int) (LeaveBalance, error)
	ListByEmployee(ctx context.Context, employeeID string, year *int) ([]LeaveBalance, error)
	Update(ctx context.Context, req UpdateLeaveBalanceRequest) error
	IncrementUsed(ctx context.Context, id int64, days float64) error
	DecrementUsed(ctx context.Context, id int64, days float64) error
}

// LeaveRequestRepository - interface for the leave_requests table.
// Requests are never deleted; history is kept for audit.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (LeaveRequest, error)
	GetByIDForUpdate(ctx context.Context, id int64) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string, skip, limit int) ([]LeaveRequest, error)
	ListByStatus(ctx context.Context, status Status, skip, limit int) ([]LeaveRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id int64, status Status, approvedBy string, processedAt time.Time, comments *string) error
}
