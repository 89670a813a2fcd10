package leave

import (
	"context"
	"log/slog"

	"github.com/kitokoh/hr-backoffice/internal/domain/employee"
	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
)

// CreateBalance implements leave.LeaveService. The employee and leave
// type must both exist; at most one balance row per (employee, type,
// year) is allowed.
func (s *leaveServiceImpl) CreateBalance(ctx context.Context, req leave.CreateLeaveBalanceRequest) (leave.LeaveBalance, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveBalance{}, err
	}

	exists, err := s.employeeRepo.Exists(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	if !exists {
		return leave.LeaveBalance{}, employee.ErrEmployeeNotFound
	}

	if _, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeaveBalance{}, err
	}

	balance := leave.LeaveBalance{
		EmployeeID:   req.EmployeeID,
		LeaveTypeID:  req.LeaveTypeID,
		Year:         req.Year,
		EntitledDays: req.EntitledDays,
	}
	if req.UsedDays != nil {
		balance.UsedDays = *req.UsedDays
	}

	created, err := s.leaveBalanceRepo.Create(ctx, balance)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	s.logger.Info("leave balance created",
		slog.Int64("balance_id", created.ID),
		slog.String("employee_id", created.EmployeeID),
		slog.Int64("leave_type_id", created.LeaveTypeID),
		slog.Int("year", created.Year),
	)
	return created, nil
}

// ListEmployeeBalances implements leave.LeaveService.
func (s *leaveServiceImpl) ListEmployeeBalances(ctx context.Context, employeeID string, year *int) ([]leave.LeaveBalance, error) {
	exists, err := s.employeeRepo.Exists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, employee.ErrEmployeeNotFound
	}
	return s.leaveBalanceRepo.ListByEmployee(ctx, employeeID, year)
}

// AdjustBalance implements leave.LeaveService. Direct administrative
// edits of entitled_days or used_days, outside the request lifecycle.
func (s *leaveServiceImpl) AdjustBalance(ctx context.Context, req leave.UpdateLeaveBalanceRequest) (leave.LeaveBalance, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveBalance{}, err
	}

	if err := s.leaveBalanceRepo.Update(ctx, req); err != nil {
		return leave.LeaveBalance{}, err
	}
	return s.leaveBalanceRepo.GetByID(ctx, req.ID)
}
