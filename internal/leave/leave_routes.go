package leave

import (
	"go-payhr/internal/identity"
	"go-payhr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, resolver identity.Resolver) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(), middleware.Principal(resolver))
	{
		leaves.GET("", h.GetAll)
		leaves.POST("", h.Create)
		leaves.POST("/:id/approve", middleware.RequireEmployeeManagement(), h.Approve)
		leaves.POST("/:id/reject", middleware.RequireEmployeeManagement(), h.Reject)
	}
}
