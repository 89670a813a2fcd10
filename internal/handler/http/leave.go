package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
	"github.com/kitokoh/hr-backoffice/internal/domain/user"
	"github.com/kitokoh/hr-backoffice/internal/handler/http/response"
	"github.com/kitokoh/hr-backoffice/internal/pkg/validator"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	CreateBalance(w http.ResponseWriter, r *http.Request)
	ListEmployeeBalances(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	UpdateRequestStatus(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func parsePagination(r *http.Request) (skip, limit int) {
	skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return skip, limit
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	created, err := l.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, leave.NewLeaveTypeResponse(created))
}

// GetType implements LeaveHandler.
func (l *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Leave type ID must be a positive integer")
		return
	}

	leaveType, err := l.leaveService.GetLeaveType(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveTypeResponse(leaveType))
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	leaveTypes, err := l.leaveService.ListLeaveTypes(r.Context(), skip, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(leaveTypes))
	for _, lt := range leaveTypes {
		responses = append(responses, leave.NewLeaveTypeResponse(lt))
	}
	response.Success(w, responses)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Leave type ID must be a positive integer")
		return
	}

	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.ID = id

	updated, err := l.leaveService.UpdateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveTypeResponse(updated))
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Leave type ID must be a positive integer")
		return
	}

	if err := l.leaveService.DeleteLeaveType(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

// CreateBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	created, err := l.leaveService.CreateBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, leave.NewLeaveBalanceResponse(created))
}

// ListEmployeeBalances implements LeaveHandler. Employees see their own
// balances; elevated roles see anyone's.
func (l *LeaveHandlerImpl) ListEmployeeBalances(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Employee ID must be a valid UUID")
		return
	}

	if !user.CanReadEmployee(identity, employeeID) {
		response.HandleError(w, user.ErrElevatedAccessRequired)
		return
	}

	var year *int
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y <= 0 {
			response.BadRequest(w, "year must be a positive integer")
			return
		}
		year = &y
	}

	balances, err := l.leaveService.ListEmployeeBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.NewLeaveBalanceResponse(b))
	}
	response.Success(w, responses)
}

// AdjustBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Balance ID must be a positive integer")
		return
	}

	var req leave.UpdateLeaveBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AdjustBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.ID = id

	updated, err := l.leaveService.AdjustBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveBalanceResponse(updated))
}

// CreateRequest implements LeaveHandler. Requests are always submitted
// for the caller's own employee record.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if identity.EmployeeID == "" {
		response.HandleError(w, user.ErrEmployeeAccountRequired)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	created, err := l.leaveService.SubmitRequest(r.Context(), identity.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, leave.NewLeaveRequestResponse(created))
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if identity.EmployeeID == "" {
		response.HandleError(w, user.ErrEmployeeAccountRequired)
		return
	}

	skip, limit := parsePagination(r)

	requests, err := l.leaveService.ListEmployeeRequests(r.Context(), identity.EmployeeID, skip, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponses(requests))
}

// GetRequest implements LeaveHandler. Visible to the request's subject
// and to elevated roles.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Request ID must be a positive integer")
		return
	}

	request, err := l.leaveService.GetRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !user.CanReadEmployee(identity, request.EmployeeID) {
		response.HandleError(w, user.ErrElevatedAccessRequired)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponse(request))
}

// ListRequests implements LeaveHandler. Elevated only; at least one of
// status_filter or employee_id must be provided.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := leave.RequestFilter{}
	filter.Skip, filter.Limit = parsePagination(r)

	if statusStr := r.URL.Query().Get("status_filter"); statusStr != "" {
		status, ok := leave.ParseStatus(statusStr)
		if !ok {
			response.BadRequest(w, "status_filter must be one of pending, approved, rejected, cancelled")
			return
		}
		filter.Status = &status
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	requests, err := l.leaveService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponses(requests))
}

// UpdateRequestStatus implements LeaveHandler. Elevated callers may move
// a request to any permitted status; employees may only cancel their own
// pending request, which the service re-checks under lock.
func (l *LeaveHandlerImpl) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Request ID must be a positive integer")
		return
	}

	var req leave.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRequestStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	target, _ := leave.ParseStatus(req.Status)

	actor := leave.Actor{
		UserID:     identity.UserID,
		EmployeeID: identity.EmployeeID,
		Elevated:   identity.Role.Elevated(),
	}

	updated, err := l.leaveService.Transition(r.Context(), id, actor, target, req.Comments)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponse(updated))
}
