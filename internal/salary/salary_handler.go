package salary

import (
	"net/http"

	"go-payhr/internal/middleware"
	"go-payhr/internal/shared/apperror"
	"go-payhr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
}

func (h *Handler) UpdateSalary(c *gin.Context) {
	var req UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}

	actor := middleware.GetPrincipal(c)

	if err := h.service.UpdateSalary(c.Request.Context(), actor, req); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) GetAdjustments(c *gin.Context) {
	rows, err := h.service.GetAdjustments(c.Request.Context(), c.Query("employee_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.SuccessList(c, http.StatusOK, rows, nil)
}
