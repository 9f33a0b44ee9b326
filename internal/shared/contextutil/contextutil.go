package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// Tipe key privat; string literal yang sama dari package lain tidak
// akan menabrak value di sini.
type contextKey int

const (
	requestIDKey contextKey = iota
	userIDKey
	userRoleKey
	loggerKey
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

func GetUserID(ctx context.Context) string {
	return stringValue(ctx, userIDKey)
}

// WithUserRole menyimpan role hasil resolve principal; dipakai untuk
// field log, bukan untuk keputusan otorisasi.
func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, userRoleKey, role)
}

func GetUserRole(ctx context.Context) string {
	return stringValue(ctx, userRoleKey)
}

// WithLogger memasukkan logger yang sudah membawa field request-scope.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger tidak pernah mengembalikan nil; urutan fallback:
// logger di context, lalu defaultLogger, lalu nop.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.NewNop()
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
