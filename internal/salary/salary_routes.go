package salary

import (
	"go-payhr/internal/identity"
	"go-payhr/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, resolver identity.Resolver, rdb *redis.Client) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.Principal(resolver))
	{
		employees.POST("/salary", middleware.RequirePayrollAccess(), middleware.Idempotency(rdb), h.UpdateSalary)
		employees.GET("/salary-adjustments", middleware.RequirePayrollAccess(), h.GetAdjustments)
	}
}
