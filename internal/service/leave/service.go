package leave

import (
	"log/slog"

	"github.com/kitokoh/hr-backoffice/internal/domain/employee"
	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
)

type leaveServiceImpl struct {
	leaveTypeRepo    leave.LeaveTypeRepository
	leaveBalanceRepo leave.LeaveBalanceRepository
	leaveRequestRepo leave.LeaveRequestRepository
	employeeRepo     employee.EmployeeRepository
	txManager        leave.TxManager
	logger           *slog.Logger

	// excludeWeekends controls the advisory duration check on submitted
	// requests. The submitted num_days is authoritative either way.
	excludeWeekends bool
}

func NewLeaveService(
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	txManager leave.TxManager,
	logger *slog.Logger,
) leave.LeaveService {
	return &leaveServiceImpl{
		leaveTypeRepo:    leaveTypeRepo,
		leaveBalanceRepo: leaveBalanceRepo,
		leaveRequestRepo: leaveRequestRepo,
		employeeRepo:     employeeRepo,
		txManager:        txManager,
		logger:           logger,
		excludeWeekends:  true,
	}
}
