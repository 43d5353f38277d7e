package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// contextKey adalah tipe privat agar tidak terjadi tabrakan key dengan library lain
type contextKey string

const (
	requestIDKey   contextKey = "request_id"
	requestMetaKey contextKey = "request_meta"
	loggerKey      contextKey = "logger"
)

// RequestMeta describes who made the current request and how.
// It is attached once per request and never mutated afterwards.
type RequestMeta struct {
	RequestID  string
	ActorID    string // employee id of the caller, empty for system work
	UserID     string
	Role       string
	UserAgent  string
	Path       string
	RemoteAddr string
}

// IsAdmin reports whether the caller holds the admin role.
func (m RequestMeta) IsAdmin() bool {
	return m.Role == "admin"
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	if meta, ok := ctx.Value(requestMetaKey).(RequestMeta); ok {
		return meta.RequestID
	}
	return ""
}

// WithRequestMeta stores a copy of meta. Later changes to the caller's value are not visible.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey, meta)
}

// GetRequestMeta returns the meta for ctx, or the zero value for background work.
func GetRequestMeta(ctx context.Context) RequestMeta {
	if ctx == nil {
		return RequestMeta{}
	}
	if meta, ok := ctx.Value(requestMetaKey).(RequestMeta); ok {
		return meta
	}
	return RequestMeta{}
}

func GetActorID(ctx context.Context) string {
	return GetRequestMeta(ctx).ActorID
}

// WithLogger memasukkan zap logger (yang biasanya sudah di-decorate) ke context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger mengambil logger dari context.
// Jika tidak ada, mengembalikan fallback (defaultLogger) agar tidak panic.
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
