package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeNameTaken   = errors.New("leave type name already exists")
	ErrLeaveTypeInUse       = errors.New("leave type is referenced by balances or requests")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrBalanceExists        = errors.New("leave balance already exists for this employee, type and year")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrForbiddenTransition  = errors.New("caller may not perform this status transition")
)
