package attendance

import (
	"go-payhr/internal/identity"
	"go-payhr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, resolver identity.Resolver) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware(), middleware.Principal(resolver))
	{
		attendances.GET("", h.GetAll)
		attendances.POST("/clock-in", h.ClockIn)
		attendances.POST("/clock-out", h.ClockOut)
	}
}
