package leave

import (
	"context"
	"log/slog"

	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
)

// CreateLeaveType implements leave.LeaveService.
func (s *leaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	created, err := s.leaveTypeRepo.Create(ctx, leave.LeaveType{
		Name:                req.Name,
		DefaultDaysEntitled: req.DefaultDaysEntitled,
	})
	if err != nil {
		return leave.LeaveType{}, err
	}

	s.logger.Info("leave type created",
		slog.Int64("leave_type_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}

// GetLeaveType implements leave.LeaveService.
func (s *leaveServiceImpl) GetLeaveType(ctx context.Context, id int64) (leave.LeaveType, error) {
	return s.leaveTypeRepo.GetByID(ctx, id)
}

// ListLeaveTypes implements leave.LeaveService.
func (s *leaveServiceImpl) ListLeaveTypes(ctx context.Context, skip, limit int) ([]leave.LeaveType, error) {
	return s.leaveTypeRepo.List(ctx, skip, limit)
}

// UpdateLeaveType implements leave.LeaveService.
func (s *leaveServiceImpl) UpdateLeaveType(ctx context.Context, req leave.UpdateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	if err := s.leaveTypeRepo.Update(ctx, req); err != nil {
		return leave.LeaveType{}, err
	}
	return s.leaveTypeRepo.GetByID(ctx, req.ID)
}

// DeleteLeaveType implements leave.LeaveService.
func (s *leaveServiceImpl) DeleteLeaveType(ctx context.Context, id int64) error {
	if err := s.leaveTypeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("leave type deleted", slog.Int64("leave_type_id", id))
	return nil
}
