package salary

// Pointer agar nol tetap dianggap "ada" dan field yang hilang bisa
// dibedakan dari nol.
type UpdateSalaryRequest struct {
	EmployeeID     string `json:"employeeId" binding:"required"`
	NewSalary      *int64 `json:"newSalary" binding:"required"`
	PreviousSalary *int64 `json:"previousSalary" binding:"required"`
	Reason         string `json:"reason"`
}

type SalaryAdjustmentResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	AdjustmentType string `json:"adjustment_type"`
	Amount         int64  `json:"amount"`
	Reason         string `json:"reason,omitempty"`
	EffectiveDate  string `json:"effective_date"`
	Status         string `json:"status"`
	ApprovedAt     string `json:"approved_at"`
}
