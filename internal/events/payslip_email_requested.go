package events

const TopicEmailRequests = "payhr.email_requests"

const EventTypePayslipEmailRequested = "payslip_email_requested"

// PayslipEmailRequestedEvent memicu pengiriman payslip lewat consumer,
// terlepas dari request yang menghasilkannya.
type PayslipEmailRequestedEvent struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeEmail string `json:"employee_email"`
	Subject       string `json:"subject"`
	MessageBody   string `json:"message_body"`
	PDFBase64     string `json:"pdf_base64,omitempty"`
	Filename      string `json:"filename,omitempty"`
}
