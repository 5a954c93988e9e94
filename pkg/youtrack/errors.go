package youtrack

import (
	"fmt"
	"strings"
)

// ErrorType represents the type of error that occurred
type ErrorType int

const (
	// ErrorTypeConfiguration indicates missing url or credentials
	ErrorTypeConfiguration ErrorType = iota
	// ErrorTypeTransport indicates a failed, timed out or impossible HTTP request
	ErrorTypeTransport
	// ErrorTypeAuth indicates the tracker rejected the login
	ErrorTypeAuth
	// ErrorTypeParse indicates a response that is not valid issue XML
	ErrorTypeParse
	// ErrorTypeFieldMissing indicates a requested column absent on an issue
	ErrorTypeFieldMissing
	// ErrorTypeSession indicates the session cookie file could not be cleaned up
	ErrorTypeSession
	// ErrorTypeValidation indicates invalid input such as an empty filter
	ErrorTypeValidation
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypeTransport:
		return "transport"
	case ErrorTypeAuth:
		return "auth"
	case ErrorTypeParse:
		return "parse"
	case ErrorTypeFieldMissing:
		return "field_missing"
	case ErrorTypeSession:
		return "session"
	case ErrorTypeValidation:
		return "validation"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Sentinels for errors.Is comparisons by type
var (
	ErrConfiguration = &TrackerError{Type: ErrorTypeConfiguration}
	ErrTransport     = &TrackerError{Type: ErrorTypeTransport}
	ErrAuth          = &TrackerError{Type: ErrorTypeAuth}
	ErrParse         = &TrackerError{Type: ErrorTypeParse}
	ErrFieldMissing  = &TrackerError{Type: ErrorTypeFieldMissing}
	ErrSession       = &TrackerError{Type: ErrorTypeSession}
	ErrValidation    = &TrackerError{Type: ErrorTypeValidation}
)

// TrackerError represents a structured error with type and suggestion
type TrackerError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
}

// Error implements the error interface
func (e *TrackerError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("caused by: %v", e.Cause))
	}

	msg := strings.Join(parts, ": ")
	if e.Suggestion != "" {
		msg += fmt.Sprintf("\n💡 %s", e.Suggestion)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *TrackerError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *TrackerError) Is(target error) bool {
	t, ok := target.(*TrackerError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// IsFatal reports whether the error must abort the process rather than a
// single render. Only a leaked session cookie file is fatal.
func (e *TrackerError) IsFatal() bool {
	return e.Type == ErrorTypeSession
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string, cause error) *TrackerError {
	return &TrackerError{
		Type:       ErrorTypeConfiguration,
		Message:    message,
		Cause:      cause,
		Suggestion: "Run 'yt-list init' or set YT_LIST_URL, YT_LIST_USER and YT_LIST_PASSWORD",
	}
}

// NewTransportError creates a new transport error
func NewTransportError(message string, cause error) *TrackerError {
	return &TrackerError{
		Type:       ErrorTypeTransport,
		Message:    message,
		Cause:      cause,
		Suggestion: "Check that the tracker is reachable; requests time out after the configured timeouts (default 1s)",
	}
}

// NewAuthError creates a new authentication error
func NewAuthError(message string, cause error) *TrackerError {
	return &TrackerError{
		Type:       ErrorTypeAuth,
		Message:    message,
		Cause:      cause,
		Suggestion: "Check user and password, and that REST login is enabled on the tracker",
	}
}

// NewParseError creates a new parse error
func NewParseError(message string, cause error) *TrackerError {
	return &TrackerError{
		Type:    ErrorTypeParse,
		Message: message,
		Cause:   cause,
	}
}

// NewFieldMissingError creates a new error for a column that an issue lacks
func NewFieldMissingError(field, issueID string) *TrackerError {
	return &TrackerError{
		Type:    ErrorTypeFieldMissing,
		Message: fmt.Sprintf("Field \"%s\" not found for issue \"%s\"", field, issueID),
	}
}

// NewSessionError creates a new session cleanup error
func NewSessionError(path string, cause error) *TrackerError {
	return &TrackerError{
		Type:       ErrorTypeSession,
		Message:    fmt.Sprintf("can't remove session cookie file %s", path),
		Cause:      cause,
		Suggestion: "Remove the file manually; it contains a tracker session",
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *TrackerError {
	return &TrackerError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Cause:      cause,
		Suggestion: "Use the form FILTER|COL1, COL2",
	}
}
