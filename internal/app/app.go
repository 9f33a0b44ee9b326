package app

import (
	"os"

	"go-payhr/internal/audit"
	"go-payhr/internal/shared/connection"

	"github.com/gin-gonic/gin"
)

// BuildApp menyiapkan koneksi infrastruktur lalu mendaftarkan semua
// modul dan route. Audit service dikembalikan supaya hook shutdown di
// bootstrap bisa menulis ke audit log yang sama.
func BuildApp(router *gin.Engine) (audit.Service, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return nil, err
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}
