package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kitokoh/hr-backoffice/internal/domain/employee"
	"github.com/kitokoh/hr-backoffice/internal/domain/user"
	"github.com/kitokoh/hr-backoffice/internal/handler/http/response"
	"github.com/kitokoh/hr-backoffice/internal/pkg/validator"
)

type EmployeeHandler interface {
	GetByID(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// GetByID implements EmployeeHandler. Employees may read their own
// record; elevated roles may read anyone's.
func (e *EmployeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Employee ID must be a valid UUID")
		return
	}

	if !user.CanReadEmployee(identity, employeeID) {
		response.HandleError(w, user.ErrElevatedAccessRequired)
		return
	}

	emp, err := e.employeeService.GetEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.NewEmployeeResponse(emp))
}
