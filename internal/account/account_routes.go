package account

import (
	"go-payhr/internal/identity"
	"go-payhr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, resolver identity.Resolver) {
	accounts := r.Group("/accounts")
	accounts.Use(middleware.AuthMiddleware(), middleware.Principal(resolver))
	{
		// Cek role ada di service agar urutan prasyarat (401/403/400)
		// tetap terkontrol satu tempat.
		accounts.DELETE("", h.DeleteAccount)
	}
}
