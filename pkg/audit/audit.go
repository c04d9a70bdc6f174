package audit

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginSuccess       EventType = "login_success"
	EventLoginFailed        EventType = "login_failed"
	EventRegistered         EventType = "account_registered"
	EventTokenRejected      EventType = "token_rejected"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventForbiddenAccess    EventType = "forbidden_access"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
)

// Logger provides structured logging for security-relevant events. It is
// separate from the application logger so security output can be shipped to
// its own sink.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger *Logger
	initOnce      sync.Once
)

// Init initializes the package-level audit logger. Safe for concurrent
// callers; only the first call takes effect.
func Init(serviceName, environment string) *Logger {
	initOnce.Do(func() {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.MessageKey = "event"
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}

		zapLogger, err := config.Build()
		if err != nil {
			zapLogger, _ = zap.NewProduction()
		}

		defaultLogger = &Logger{
			zapLogger:   zapLogger,
			serviceName: serviceName,
			environment: environment,
		}
	})
	return defaultLogger
}

// Event logs a security event with arbitrary structured fields.
func Event(event EventType, fields ...zap.Field) {
	if defaultLogger == nil {
		return
	}
	base := []zap.Field{
		zap.String("service", defaultLogger.serviceName),
		zap.String("env", defaultLogger.environment),
	}
	defaultLogger.zapLogger.Info(string(event), append(base, fields...)...)
}

// LoginFailed records a failed credential check. The subject is the submitted
// email; callers must not include the password.
func LoginFailed(email, ip, reason string) {
	Event(EventLoginFailed,
		zap.String("subject", email),
		zap.String("ip", ip),
		zap.String("reason", reason),
	)
}

// LoginSuccess records a successful login.
func LoginSuccess(accountID int64, email, ip string) {
	Event(EventLoginSuccess,
		zap.Int64("account_id", accountID),
		zap.String("subject", email),
		zap.String("ip", ip),
	)
}

// TokenRejected records a bearer token that failed verification. The request
// still proceeds unauthenticated; rejection happens later at the route gate.
func TokenRejected(ip string, err error) {
	Event(EventTokenRejected,
		zap.String("ip", ip),
		zap.Error(err),
	)
}

// AccessDenied records a 401/403 produced by the route gate.
func AccessDenied(event EventType, method, path, ip string, accountID int64) {
	Event(event,
		zap.String("method", method),
		zap.String("path", path),
		zap.String("ip", ip),
		zap.Int64("account_id", accountID),
	)
}
