package audit

import (
	"net/http"
	"strconv"

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

func (h *Handler) Append(c *gin.Context) {
	var req AppendAuditLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}

	err := h.service.Append(c.Request.Context(), Entry{
		UserID:     req.UserID,
		UserRole:   req.UserRole,
		UserName:   req.UserName,
		UserEmail:  req.UserEmail,
		Action:     req.Action,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Metadata:   req.Metadata,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	rows, err := h.service.GetAll(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.SuccessList(c, http.StatusOK, rows, nil)
}
