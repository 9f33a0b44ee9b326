package audit

import (
	"go-payhr/internal/identity"
	"go-payhr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, resolver identity.Resolver) {
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware(), middleware.Principal(resolver))
	{
		logs.POST("", h.Append)
		logs.GET("", middleware.RequireAdminSurface(), h.GetAll)
	}
}
