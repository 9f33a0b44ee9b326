package mailer

import (
	"go-payhr/internal/identity"
	"go-payhr/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, resolver identity.Resolver, rdb *redis.Client) {
	emails := r.Group("/emails")
	emails.Use(middleware.AuthMiddleware(), middleware.Principal(resolver))
	{
		emails.POST("/send", middleware.RequireAdminSurface(), middleware.Idempotency(rdb), h.Send)
		emails.POST("/payslip", middleware.RequirePayrollAccess(), middleware.Idempotency(rdb), h.SendPayslip)
	}
}
