package middleware

import (
	"net/http"

	"go-payhr/internal/identity"
	"go-payhr/internal/shared/apperror"
	"go-payhr/internal/shared/contextutil"
	"go-payhr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Principal me-resolve Principal per-request dari session claims yang
// sudah diverifikasi AuthMiddleware. Fail-closed: tanpa claims, 401.
func Principal(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &identity.SessionClaims{
			UserID: c.GetString("user_id"),
			Email:  c.GetString("email"),
		}

		p, err := resolver.Resolve(c.Request.Context(), claims)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
			c.Abort()
			return
		}

		c.Set(principalKey, p)
		c.Request = c.Request.WithContext(
			contextutil.WithUserRole(c.Request.Context(), string(p.Role)),
		)
		c.Next()
	}
}

// GetPrincipal mengambil principal yang di-set middleware Principal.
// Nil berarti request belum melewati middleware itu.
func GetPrincipal(c *gin.Context) *identity.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*identity.Principal)
	return p
}

func requireRole(check func(*identity.Principal) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required")
			c.Abort()
			return
		}
		if !check(p) {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You do not have permission to access this resource")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return requireRole((*identity.Principal).IsAdmin)
}

func RequireAdminSurface() gin.HandlerFunc {
	return requireRole((*identity.Principal).CanAccessAdminSurface)
}

func RequirePayrollAccess() gin.HandlerFunc {
	return requireRole((*identity.Principal).CanManagePayroll)
}

func RequireEmployeeManagement() gin.HandlerFunc {
	return requireRole((*identity.Principal).CanManageEmployees)
}
