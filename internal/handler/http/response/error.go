package response

import (
	"errors"
	"net/http"

	"github.com/kitokoh/hr-backoffice/internal/domain/auth"
	"github.com/kitokoh/hr-backoffice/internal/domain/employee"
	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
	"github.com/kitokoh/hr-backoffice/internal/domain/user"
	"github.com/kitokoh/hr-backoffice/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrElevatedAccessRequired):
		Forbidden(w, "Elevated access required")
	case errors.Is(err, user.ErrEmployeeAccountRequired):
		Forbidden(w, "Caller has no employee record")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeNameTaken):
		Conflict(w, "Leave type name already exists")
	case errors.Is(err, leave.ErrLeaveTypeInUse):
		Conflict(w, "Leave type is referenced by balances or requests")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrBalanceExists):
		Conflict(w, "Leave balance already exists for this employee, type and year")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Status transition not allowed from the current status")
	case errors.Is(err, leave.ErrForbiddenTransition):
		Forbidden(w, "You may only cancel your own pending requests")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
