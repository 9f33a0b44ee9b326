package attendance

type ClockInRequest struct {
	Notes *string `json:"notes"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	AttendanceDate string  `json:"attendance_date"`
	TimeIn         *string `json:"time_in,omitempty"`
	TimeOut        *string `json:"time_out,omitempty"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
}
