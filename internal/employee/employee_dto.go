package employee

type CreateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Position string `json:"position"`
	UserID   string `json:"user_id"`
}

type EmployeeResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id,omitempty"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Position      string `json:"position,omitempty"`
	MonthlySalary int64  `json:"monthly_salary"`
	UpdatedAt     string `json:"updated_at"`
}
