package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payhr/internal/identity"
	"go-payhr/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func idempotencyRouter(t *testing.T, handlerCalled *bool) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/payments",
		func(c *gin.Context) { c.Set("user_id", "user-1") },
		Idempotency(rdb),
		func(c *gin.Context) {
			*handlerCalled = true
			c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"id": "new"}})
		},
	)
	return r, mock
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	var called bool
	r, mock := idempotencyRouter(t, &called)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	r.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_CacheHitReplaysWithoutHandler(t *testing.T) {
	var called bool
	r, mock := idempotencyRouter(t, &called)

	cacheKey := fmt.Sprintf("idemp:%s:%s:%s", "/payments", "user-1", "key-123")
	cached, _ := json.Marshal(gin.H{"id": "original"})
	mock.ExpectGet(cacheKey).SetVal(string(cached))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set("Idempotency-Key", "key-123")
	r.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	data, _ := body["data"].(map[string]any)
	assert.Equal(t, "original", data["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_LockConflict(t *testing.T) {
	var called bool
	r, mock := idempotencyRouter(t, &called)

	cacheKey := fmt.Sprintf("idemp:%s:%s:%s", "/payments", "user-1", "key-123")
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set("Idempotency-Key", "key-123")
	r.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "PROCESSING", body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstRequestAcquiresLock(t *testing.T) {
	var called bool
	rdb, mock := redismock.NewClientMock()

	var cacheKeyInCtx, lockKeyInCtx string
	r := gin.New()
	r.POST("/payments",
		func(c *gin.Context) { c.Set("user_id", "user-1") },
		Idempotency(rdb),
		func(c *gin.Context) {
			called = true
			cacheKeyInCtx = c.GetString("idempotency_cache_key")
			lockKeyInCtx = c.GetString("idempotency_lock_key")
			c.JSON(http.StatusCreated, gin.H{"success": true})
		},
	)

	cacheKey := fmt.Sprintf("idemp:%s:%s:%s", "/payments", "user-1", "key-123")
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set("Idempotency-Key", "key-123")
	r.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, cacheKey, cacheKeyInCtx)
	assert.Equal(t, cacheKey+":lock", lockKeyInCtx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type staticResolver struct {
	principal *identity.Principal
	err       error
}

func (s *staticResolver) Resolve(ctx context.Context, claims *identity.SessionClaims) (*identity.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

func TestPrincipal_SetsResolvedPrincipal(t *testing.T) {
	resolved := &identity.Principal{ID: "u1", Email: "a@b.co", Role: identity.RoleHR}

	var got *identity.Principal
	r := gin.New()
	r.GET("/me",
		func(c *gin.Context) { c.Set("user_id", "u1"); c.Set("email", "a@b.co") },
		Principal(&staticResolver{principal: resolved}),
		func(c *gin.Context) {
			got = GetPrincipal(c)
			c.Status(http.StatusOK)
		},
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, resolved, got)
}

func TestPrincipal_ResolveFailureAborts(t *testing.T) {
	var called bool
	r := gin.New()
	r.GET("/me",
		Principal(&staticResolver{err: apperror.ErrUnauthorized}),
		func(c *gin.Context) { called = true },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func guardedRouter(p *identity.Principal, guard gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if p != nil {
				c.Set(principalKey, p)
			}
		},
		guard,
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) },
	)
	return r
}

func TestRequireRole(t *testing.T) {
	admin := &identity.Principal{ID: "u1", Role: identity.RoleAdmin}
	hr := &identity.Principal{ID: "u2", Role: identity.RoleHR}
	employee := &identity.Principal{ID: "u3", Role: identity.RoleEmployee}

	tests := []struct {
		name      string
		principal *identity.Principal
		guard     gin.HandlerFunc
		want      int
	}{
		{"admin passes admin surface", admin, RequireAdminSurface(), http.StatusOK},
		{"hr passes admin surface", hr, RequireAdminSurface(), http.StatusOK},
		{"employee blocked from admin surface", employee, RequireAdminSurface(), http.StatusForbidden},
		{"only admin passes RequireAdmin", hr, RequireAdmin(), http.StatusForbidden},
		{"admin passes RequireAdmin", admin, RequireAdmin(), http.StatusOK},
		{"hr manages payroll", hr, RequirePayrollAccess(), http.StatusOK},
		{"employee blocked from payroll", employee, RequirePayrollAccess(), http.StatusForbidden},
		{"missing principal is unauthorized", nil, RequirePayrollAccess(), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			guardedRouter(tt.principal, tt.guard).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
