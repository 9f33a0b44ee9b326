package employee

import (
	"go-payhr/internal/identity"
	"go-payhr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, resolver identity.Resolver) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.Principal(resolver))
	{
		employees.GET("", middleware.RequireEmployeeManagement(), h.GetAll)
		employees.GET("/:id", middleware.RequireEmployeeManagement(), h.GetByID)
		employees.POST("", middleware.RequireEmployeeManagement(), h.Create)
	}
}
