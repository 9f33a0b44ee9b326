package mailer

type SendEmailRequest struct {
	To          string       `json:"to" binding:"required"`
	Subject     string       `json:"subject" binding:"required"`
	HTML        string       `json:"html" binding:"required"`
	Attachments []Attachment `json:"attachments"`
}

type SendPayslipRequest struct {
	EmployeeEmail string `json:"employeeEmail" binding:"required"`
	Subject       string `json:"subject" binding:"required"`
	MessageBody   string `json:"messageBody" binding:"required"`
	PDFBase64     string `json:"pdfBase64"`
	Filename      string `json:"filename"`
}
