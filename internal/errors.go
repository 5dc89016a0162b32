package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeInvalidState ErrorType = "INVALID_STATE"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeRequestNotFound     ErrorCode = "REQUEST_NOT_FOUND"
	ErrCodeRequestTypeNotFound ErrorCode = "REQUEST_TYPE_NOT_FOUND"
	ErrCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"

	ErrCodeAccessDenied        ErrorCode = "ACCESS_DENIED"
	ErrCodeNotAssignedApprover ErrorCode = "NOT_ASSIGNED_APPROVER"

	ErrCodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	ErrCodeCannotModifyRequest  ErrorCode = "CANNOT_MODIFY_REQUEST"
	ErrCodeDuplicateTypeCode    ErrorCode = "DUPLICATE_TYPE_CODE"
	ErrCodeEmailAlreadyExists   ErrorCode = "EMAIL_ALREADY_EXISTS"
	ErrCodeCommentRequired      ErrorCode = "COMMENT_REQUIRED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

// AppError is the error shape every service returns. StatusCode maps it onto
// HTTP at the transport layer; the core only cares about Type and Code.
type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewInvalidStateError reports a transition (or edit) that the current status
// does not permit. The message always names both the current and the
// attempted status so callers can see what was refused.
func NewInvalidStateError(current, attempted string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidState,
		Code:       ErrCodeInvalidTransition,
		Message:    fmt.Sprintf("invalid status transition from %s to %s", current, attempted),
		StatusCode: http.StatusBadRequest,
	}
}

// NewCannotModifyError reports an edit or cancel attempted outside the
// SUBMITTED status.
func NewCannotModifyError(operation, current string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidState,
		Code:       ErrCodeCannotModifyRequest,
		Message:    fmt.Sprintf("can only %s requests in SUBMITTED status, current status is %s", operation, current),
		StatusCode: http.StatusBadRequest,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrRequestNotFound     = NewNotFoundError("request not found", ErrCodeRequestNotFound)
	ErrRequestTypeNotFound = NewNotFoundError("request type not found", ErrCodeRequestTypeNotFound)
	ErrUserNotFound        = NewNotFoundError("user not found", ErrCodeUserNotFound)

	ErrAccessDenied        = NewForbiddenError("access denied", ErrCodeAccessDenied)
	ErrNotAssignedApprover = NewForbiddenError("you can only approve or reject requests assigned to you", ErrCodeNotAssignedApprover)

	ErrDuplicateTypeCode  = NewConflictError("request type code already exists", ErrCodeDuplicateTypeCode)
	ErrEmailAlreadyExists = NewConflictError("email already exists", ErrCodeEmailAlreadyExists)

	ErrInvalidCredentials = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("user account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
