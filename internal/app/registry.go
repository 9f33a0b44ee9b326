package app

import (
	"database/sql"

	"go-payhr/internal/account"
	"go-payhr/internal/attendance"
	"go-payhr/internal/audit"
	"go-payhr/internal/auth"
	"go-payhr/internal/employee"
	"go-payhr/internal/identity"
	"go-payhr/internal/leave"
	"go-payhr/internal/mailer"
	"go-payhr/internal/messaging/kafka"
	"go-payhr/internal/middleware"
	"go-payhr/internal/salary"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) (audit.Service, error) {
	// --- Repositories ---
	identityRepo := identity.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Identity Core ---
	resolver := identity.NewResolver(identityRepo)
	provisioner := identity.NewProvisioner(identityRepo, zap.L())

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	authService := auth.NewService(authRepo, resolver, provisioner)
	employeeService := employee.NewService(employeeRepo)
	salaryService := salary.NewService(employeeRepo, salaryRepo, auditService, outboxRepo)
	accountService := account.NewService(authRepo, identityRepo, auditService)
	attendanceService := attendance.NewService(db, attendanceRepo, outboxRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, auditService)
	dispatcher := mailer.NewDispatcher(nil)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditService)
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	salaryHandler := salary.NewHandler(salaryService)
	accountHandler := account.NewHandler(accountService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)
	mailerHandler := mailer.NewHandler(dispatcher)

	// --- Global middleware ---
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByIP(rate.Limit(20), 40),
	)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		account.RegisterRoutes(api, accountHandler, resolver)
		audit.RegisterRoutes(api, auditHandler, resolver)
		employee.RegisterRoutes(api, employeeHandler, resolver)
		salary.RegisterRoutes(api, salaryHandler, resolver, rdb)
		attendance.RegisterRoutes(api, attendanceHandler, resolver)
		leave.RegisterRoutes(api, leaveHandler, resolver)
		mailer.RegisterRoutes(api, mailerHandler, resolver, rdb)
	}

	return auditService, nil
}
