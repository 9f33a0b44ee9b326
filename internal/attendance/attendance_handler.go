package attendance

import (
	"net/http"
	"time"

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

func (h *Handler) ClockIn(c *gin.Context) {
	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}

	actor := middleware.GetPrincipal(c)
	if actor == nil {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required")
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), actor.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"data": resp})
}

func (h *Handler) ClockOut(c *gin.Context) {
	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}

	actor := middleware.GetPrincipal(c)
	if actor == nil {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required")
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), actor.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": resp})
}

func (h *Handler) GetAll(c *gin.Context) {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	resp, err := h.service.GetAll(c.Request.Context(), middleware.GetPrincipal(c), date)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.SuccessList(c, http.StatusOK, resp, nil)
}
