package mailer

import (
	"fmt"
	"net/http"

	"go-payhr/internal/shared/apperror"
	"go-payhr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	dispatcher Dispatcher
}

func NewHandler(dispatcher Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
}

func (h *Handler) Send(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}

	result, err := h.dispatcher.Send(c.Request.Context(), req.To, req.Subject, req.HTML, req.Attachments)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messageId": result.MessageID})
}

func (h *Handler) SendPayslip(c *gin.Context) {
	var req SendPayslipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}

	attachment, err := PayslipAttachment(req.MessageBody, req.PDFBase64, req.Filename)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	result, err := h.dispatcher.Send(
		c.Request.Context(),
		req.EmployeeEmail,
		req.Subject,
		PayslipHTML(req.MessageBody),
		[]Attachment{attachment},
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"messageId": result.MessageID,
		"message":   fmt.Sprintf("Payslip sent to %s", NormalizeRecipient(req.EmployeeEmail)),
	})
}
