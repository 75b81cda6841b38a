// Package errors provides custom error types for the Gemini chat client.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrEmptyAPIKey      = errors.New("api key is empty")
	ErrUnsupportedModel = errors.New("unsupported model")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrNoSession        = errors.New("no active chat session")
	ErrSessionInactive  = errors.New("chat session is no longer active")
	ErrStreamConsumed   = errors.New("response stream already consumed")
	ErrClientClosed     = errors.New("client is closed")
	ErrInvalidResponse  = errors.New("invalid response format")
)

// ConfigError is returned when a key/model pair cannot be used to start a chat.
// Message is meant to be shown to the user as is.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("configuration failed: %v", e.Err)
	}
	return "configuration failed"
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, err error) *ConfigError {
	return &ConfigError{Message: message, Err: err}
}

// SendError is returned when a message could not be delivered or its
// response stream broke off.
type SendError struct {
	Message string
	Err     error
}

func (e *SendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "send failed"
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// NewSendError creates a new SendError
func NewSendError(message string, err error) *SendError {
	return &SendError{Message: message, Err: err}
}

// AuthError represents a rejected API key
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed: the API key was rejected"
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *AuthError) Is(target error) bool {
	if target == ErrAuthFailed {
		return true
	}
	_, ok := target.(*AuthError)
	return ok
}

// NewAuthError creates a new AuthError
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// APIError represents an API request failure
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewAPIErrorWithBody creates a new APIError keeping the raw response body
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	e := NewAPIError(statusCode, endpoint, message)
	e.Body = body
	return e
}

// NetworkError wraps transport failures (DNS, TLS, connection resets)
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s (%s): %v", e.Operation, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Err: err}
}

// NewNetworkErrorWithEndpoint creates a new NetworkError for a specific endpoint
func NewNetworkErrorWithEndpoint(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// Is matches context.DeadlineExceeded so callers can use either form.
func (e *TimeoutError) Is(target error) bool {
	if target == context.DeadlineExceeded {
		return true
	}
	_, ok := target.(*TimeoutError)
	return ok
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// UsageLimitError represents a quota or rate limit rejection
type UsageLimitError struct {
	Message string
}

func (e *UsageLimitError) Error() string {
	if e.Message == "" {
		return "usage limit exceeded"
	}
	return fmt.Sprintf("usage limit exceeded: %s", e.Message)
}

// NewUsageLimitError creates a new UsageLimitError
func NewUsageLimitError(message string) *UsageLimitError {
	return &UsageLimitError{Message: message}
}

// ModelError represents an unknown or unavailable model
type ModelError struct {
	Model   string
	Message string
}

func (e *ModelError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("model error (%s): %s", e.Model, e.Message)
	}
	return fmt.Sprintf("model error: %s", e.Message)
}

// NewModelError creates a new ModelError
func NewModelError(model, message string) *ModelError {
	return &ModelError{Model: model, Message: message}
}

// BlockedError represents a prompt or response blocked by safety filters
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	if e.Reason == "" {
		return "content blocked"
	}
	return fmt.Sprintf("content blocked: %s", e.Reason)
}

// NewBlockedError creates a new BlockedError
func NewBlockedError(reason string) *BlockedError {
	return &BlockedError{Reason: reason}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsConfigError reports whether err carries a ConfigError
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsSendError reports whether err carries a SendError
func IsSendError(err error) bool {
	var e *SendError
	return errors.As(err, &e)
}

// IsAuthError reports whether the API key was rejected
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

// IsTimeoutError reports whether err is a timeout
func IsTimeoutError(err error) bool {
	var e *TimeoutError
	if errors.As(err, &e) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsRateLimitError reports whether err is a quota rejection
func IsRateLimitError(err error) bool {
	var e *UsageLimitError
	return errors.As(err, &e)
}

// IsModelError reports whether err is a model rejection
func IsModelError(err error) bool {
	var e *ModelError
	return errors.As(err, &e)
}

// IsBlockedError reports whether err is a safety block
func IsBlockedError(err error) bool {
	var e *BlockedError
	return errors.As(err, &e)
}

// IsCanceled reports whether err stems from a cancelled context
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// GetResponseBody returns the raw response body carried by err, or ""
func GetResponseBody(err error) string {
	var e *APIError
	if errors.As(err, &e) {
		return e.Body
	}
	return ""
}
