package employee

const dateLayout = "2006-01-02"

type EmployeeResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Position *string `json:"position"`
	HireDate *string `json:"hire_date"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:       e.ID,
		FullName: e.FullName,
		Email:    e.Email,
		Position: e.Position,
	}
	if e.HireDate != nil {
		hired := e.HireDate.Format(dateLayout)
		resp.HireDate = &hired
	}
	return resp
}
