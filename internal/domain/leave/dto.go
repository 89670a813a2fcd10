package leave

import (
	"time"

	"github.com/kitokoh/hr-backoffice/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name                string `json:"name"`
	DefaultDaysEntitled *int   `json:"default_days_entitled,omitempty"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if r.DefaultDaysEntitled != nil && *r.DefaultDaysEntitled < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_days_entitled",
			Message: "default_days_entitled must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveTypeRequest struct {
	ID                  int64   `json:"-"`
	Name                *string `json:"name,omitempty"`
	DefaultDaysEntitled *int    `json:"default_days_entitled,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 255 characters",
			})
		}
	}
	if r.DefaultDaysEntitled != nil && *r.DefaultDaysEntitled < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_days_entitled",
			Message: "default_days_entitled must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLeaveBalanceRequest struct {
	EmployeeID   string   `json:"employee_id"`
	LeaveTypeID  int64    `json:"leave_type_id"`
	Year         int      `json:"year"`
	EntitledDays float64  `json:"entitled_days"`
	UsedDays     *float64 `json:"used_days,omitempty"`
}

func (r *CreateLeaveBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if r.LeaveTypeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if r.Year <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive integer",
		})
	}
	if r.EntitledDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entitled_days",
			Message: "entitled_days must not be negative",
		})
	}
	if r.UsedDays != nil && *r.UsedDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "used_days",
			Message: "used_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveBalanceRequest struct {
	ID           int64    `json:"-"`
	EntitledDays *float64 `json:"entitled_days,omitempty"`
	UsedDays     *float64 `json:"used_days,omitempty"`
}

func (r *UpdateLeaveBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EntitledDays == nil && r.UsedDays == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "entitled_days",
			Message: "at least one of entitled_days or used_days is required",
		})
	}
	if r.EntitledDays != nil && *r.EntitledDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entitled_days",
			Message: "entitled_days must not be negative",
		})
	}
	if r.UsedDays != nil && *r.UsedDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "used_days",
			Message: "used_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLeaveRequestRequest struct {
	LeaveTypeID int64   `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	NumDays     float64 `json:"num_days"`
	Reason      *string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LeaveTypeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.NumDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "num_days",
			Message: "num_days must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed start and end dates. Validate must have
// succeeded first.
func (r *CreateLeaveRequestRequest) Dates() (start, end time.Time) {
	start, _ = validator.IsValidDate(r.StartDate)
	end, _ = validator.IsValidDate(r.EndDate)
	return start, end
}

type TransitionRequest struct {
	Status   string  `json:"status"`
	Comments *string `json:"comments,omitempty"`
}

func (r *TransitionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if _, ok := ParseStatus(r.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected, cancelled",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RequestFilter narrows the elevated request listing. At least one of
// Status or EmployeeID must be set.
type RequestFilter struct {
	Status     *Status
	EmployeeID *string
	Skip       int
	Limit      int
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status == nil && f.EmployeeID == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status_filter",
			Message: "at least one of status_filter or employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

const dateLayout = "2006-01-02"

type LeaveTypeResponse struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	DefaultDaysEntitled *int   `json:"default_days_entitled"`
}

func NewLeaveTypeResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                  t.ID,
		Name:                t.Name,
		DefaultDaysEntitled: t.DefaultDaysEntitled,
	}
}

type LeaveBalanceResponse struct {
	ID            int64   `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   int64   `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	Year          int     `json:"year"`
	EntitledDays  float64 `json:"entitled_days"`
	UsedDays      float64 `json:"used_days"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		ID:            b.ID,
		EmployeeID:    b.EmployeeID,
		LeaveTypeID:   b.LeaveTypeID,
		LeaveTypeName: b.LeaveTypeName,
		Year:          b.Year,
		EntitledDays:  b.EntitledDays,
		UsedDays:      b.UsedDays,
	}
}

type LeaveRequestResponse struct {
	ID            int64   `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   int64   `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	Status        string  `json:"status"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	NumDays       float64 `json:"num_days"`
	Reason        *string `json:"reason"`
	RequestDate   string  `json:"request_date"`
	ApprovedByID  *string `json:"approved_by_id"`
	ProcessedDate *string `json:"processed_date"`
	Comments      *string `json:"comments"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		Status:        string(r.Status),
		StartDate:     r.StartDate.Format(dateLayout),
		EndDate:       r.EndDate.Format(dateLayout),
		NumDays:       r.NumDays,
		Reason:        r.Reason,
		RequestDate:   r.RequestDate.UTC().Format(time.RFC3339),
		ApprovedByID:  r.ApprovedByID,
		Comments:      r.Comments,
	}
	if r.ProcessedDate != nil {
		processed := r.ProcessedDate.UTC().Format(time.RFC3339)
		resp.ProcessedDate = &processed
	}
	return resp
}

func NewLeaveRequestResponses(requests []LeaveRequest) []LeaveRequestResponse {
	responses := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, NewLeaveRequestResponse(r))
	}
	return responses
}
