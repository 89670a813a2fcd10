package leave

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kitokoh/hr-backoffice/internal/domain/employee"
	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
)

// SubmitRequest implements leave.LeaveService. New requests always enter
// the lifecycle as pending; no balance is touched on submission. The
// submitted num_days is authoritative, but a mismatch against the
// computed span is logged so HR can follow up.
func (s *leaveServiceImpl) SubmitRequest(ctx context.Context, employeeID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	exists, err := s.employeeRepo.Exists(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !exists {
		return leave.LeaveRequest{}, employee.ErrEmployeeNotFound
	}

	leaveType, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	start, end := req.Dates()

	if computed := WorkingDays(start, end, s.excludeWeekends); computed != req.NumDays {
		s.logger.Warn("submitted num_days differs from computed duration",
			slog.String("employee_id", employeeID),
			slog.Int64("leave_type_id", req.LeaveTypeID),
			slog.Float64("num_days", req.NumDays),
			slog.Float64("computed_days", computed),
		)
	}

	created, err := s.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:  employeeID,
		LeaveTypeID: req.LeaveTypeID,
		Status:      leave.StatusPending,
		StartDate:   start,
		EndDate:     end,
		NumDays:     req.NumDays,
		Reason:      req.Reason,
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	created.LeaveTypeName = &leaveType.Name

	s.logger.Info("leave request submitted",
		slog.Int64("request_id", created.ID),
		slog.String("employee_id", employeeID),
		slog.Int64("leave_type_id", created.LeaveTypeID),
		slog.Float64("num_days", created.NumDays),
	)
	return created, nil
}

// GetRequest implements leave.LeaveService.
func (s *leaveServiceImpl) GetRequest(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	return s.leaveRequestRepo.GetByID(ctx, id)
}

// ListEmployeeRequests implements leave.LeaveService.
func (s *leaveServiceImpl) ListEmployeeRequests(ctx context.Context, employeeID string, skip, limit int) ([]leave.LeaveRequest, error) {
	return s.leaveRequestRepo.ListByEmployee(ctx, employeeID, skip, limit)
}

// ListRequests implements leave.LeaveService.
func (s *leaveServiceImpl) ListRequests(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.leaveRequestRepo.List(ctx, filter)
}

// Transition implements leave.LeaveService. The whole move runs in one
// transaction: the request row is locked first, then the matching
// balance row, then both are written. Rows lock in the same order on
// every code path so concurrent transitions serialize instead of
// deadlocking.
//
// Balance effects are derived from the (current, target) pair, not from
// the target alone, so revoking an approval returns exactly the days the
// approval consumed and a rejection of a pending request touches nothing.
func (s *leaveServiceImpl) Transition(ctx context.Context, requestID int64, actor leave.Actor, target leave.Status, comments *string) (leave.LeaveRequest, error) {
	var result leave.LeaveRequest

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		request, err := s.leaveRequestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		if !actor.Elevated {
			// Non-elevated callers may only cancel their own pending
			// request.
			if actor.EmployeeID != request.EmployeeID ||
				target != leave.StatusCancelled ||
				request.Status != leave.StatusPending {
				return leave.ErrForbiddenTransition
			}
		}

		if !leave.CanTransition(request.Status, target) {
			return leave.ErrInvalidTransition
		}

		if request.Status == target {
			// Idempotent re-apply. No balance effect, no audit rewrite.
			result = request
			return nil
		}

		if delta := leave.BalanceDelta(request.Status, target); delta != 0 {
			balance, err := s.leaveBalanceRepo.GetForKeyForUpdate(
				ctx, request.EmployeeID, request.LeaveTypeID, request.BalanceYear(),
			)
			switch {
			case errors.Is(err, leave.ErrBalanceNotFound):
				// The status change still proceeds so the request record
				// stays truthful; the ledger is reconciled by HR later.
				s.logger.Warn("no leave balance for transition, status updated without balance effect",
					slog.Int64("request_id", request.ID),
					slog.String("employee_id", request.EmployeeID),
					slog.Int64("leave_type_id", request.LeaveTypeID),
					slog.Int("year", request.BalanceYear()),
					slog.String("target_status", string(target)),
				)
			case err != nil:
				return err
			case delta > 0:
				if err := s.leaveBalanceRepo.IncrementUsed(ctx, balance.ID, request.NumDays); err != nil {
					return err
				}
			default:
				if err := s.leaveBalanceRepo.DecrementUsed(ctx, balance.ID, request.NumDays); err != nil {
					return err
				}
			}
		}

		now := time.Now()
		if err := s.leaveRequestRepo.UpdateStatus(ctx, request.ID, target, actor.UserID, now, comments); err != nil {
			return err
		}

		request.Status = target
		request.ApprovedByID = &actor.UserID
		request.ProcessedDate = &now
		if comments != nil {
			request.Comments = comments
		}
		result = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.logger.Info("leave request transitioned",
		slog.Int64("request_id", result.ID),
		slog.String("status", string(result.Status)),
		slog.String("processed_by", actor.UserID),
	)
	return result, nil
}
