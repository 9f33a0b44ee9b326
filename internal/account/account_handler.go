package account

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

func (h *Handler) DeleteAccount(c *gin.Context) {
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}

	actor := middleware.GetPrincipal(c)

	if err := h.service.DeleteAccount(c.Request.Context(), actor, req); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}

	response.Success(c, http.StatusOK, nil)
}
