// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/strataesg/internal/app/system/jsonutil"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// ErrorLogger wraps the zap logger for request-scoped error logging.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// Log logs an error with the request path and method.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	e.logger.Error(msg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	}, fields...)
	e.logger.Error(msg, allFields...)
}

// Handler provides error responses for the router.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new error Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	jsonutil.NotFound(w, "not found")
}

// MethodNotAllowed answers known routes used with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonutil.Error(w, http.StatusMethodNotAllowed, "method not allowed")
}

// CSRFFailure is installed as the gorilla/csrf error handler.
func (h *Handler) CSRFFailure(w http.ResponseWriter, r *http.Request) {
	reason := csrf.FailureReason(r)
	msg := "invalid CSRF token"
	if reason != nil {
		msg = reason.Error()
	}
	h.logger.Warn("csrf check failed",
		zap.String("path", r.URL.Path),
		zap.String("reason", msg))
	jsonutil.Forbidden(w, "forbidden: "+msg)
}
