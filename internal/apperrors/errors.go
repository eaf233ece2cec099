package apperrors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeDateFormat   ErrorType = "date_format"
	ErrorTypeOrder        ErrorType = "order"
	ErrorTypeDuplicateKey ErrorType = "duplicate_key"
	ErrorTypeAuth         ErrorType = "auth"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeDelivery     ErrorType = "delivery"
	ErrorTypeStorage      ErrorType = "storage"
	ErrorTypeInternal     ErrorType = "internal"
)

// AppError carries a typed application error with optional context fields.
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	Internal error
	Context  map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches AppErrors by type and code, so sentinel comparisons work
// across wrapping.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext attaches a key/value pair for structured logging.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields.
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
	}
	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}
	for k, v := range e.Context {
		fields = append(fields, k, v)
	}
	return fields
}

// New creates a new AppError.
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// Predefined errors
var (
	ErrInvalidCredentials = New(ErrorTypeAuth, "INVALID_CREDENTIALS", "Invalid username/email or password")
	ErrUnauthorized       = New(ErrorTypeAuth, "UNAUTHORIZED", "Login required")
	ErrNotFound           = New(ErrorTypeNotFound, "NOT_FOUND", "Record not found")
	ErrForbidden          = New(ErrorTypeForbidden, "FORBIDDEN", "Record belongs to another user")
	ErrDuplicateUser      = New(ErrorTypeDuplicateKey, "DUPLICATE_USER", "Username or email already registered")
	ErrExpiryNotAfterMfg  = New(ErrorTypeOrder, "EXPIRY_BEFORE_MFG", "Expiry date must be after manufacturing date")
)

// Convenience constructors for common errors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "VALIDATION", message)
}

func NewDateFormatError(field string, err error) *AppError {
	return Wrap(err, ErrorTypeDateFormat, "DATE_FORMAT", fmt.Sprintf("Invalid %s date, expected YYYY-MM-DD", field)).
		WithContext("field", field)
}

func NewDatabaseError(err error) *AppError {
	return Wrap(err, ErrorTypeStorage, "DB_ERROR", "Database operation failed")
}

func NewStorageError(err error, path string) *AppError {
	return Wrap(err, ErrorTypeStorage, "FILE_ERROR", "File operation failed").
		WithContext("path", path)
}

func NewDeliveryError(err error, recipient string) *AppError {
	return Wrap(err, ErrorTypeDelivery, "DELIVERY", "Email delivery failed").
		WithContext("recipient", recipient)
}

func NewInternalError(err error) *AppError {
	return Wrap(err, ErrorTypeInternal, "INTERNAL", "Internal server error")
}

// Handler provides severity-aware error logging.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle logs an error according to its type: expected user-facing
// conditions at warn level, everything else at error level.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
		return
	}

	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeDateFormat, ErrorTypeOrder,
		ErrorTypeDuplicateKey, ErrorTypeAuth, ErrorTypeNotFound, ErrorTypeForbidden:
		h.logger.WarnContext(ctx, "Request error", appErr.LogFields()...)
	case ErrorTypeDelivery:
		h.logger.WarnContext(ctx, "Delivery error", appErr.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Critical error", appErr.LogFields()...)
	}
}
