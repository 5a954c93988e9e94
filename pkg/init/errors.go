package init

import (
	"errors"
	"fmt"
	"io"

	"github.com/yahsan2/yt-list/pkg/youtrack"
)

// ErrorType represents the type of initialization error
type ErrorType int

const (
	// ErrorTypeConfig indicates a configuration file error
	ErrorTypeConfig ErrorType = iota
	// ErrorTypeTracker indicates the tracker could not be reached or refused the login
	ErrorTypeTracker
	// ErrorTypeFileSystem indicates a file system error
	ErrorTypeFileSystem
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation
)

// InitError represents an initialization error with context
type InitError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *InitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *InitError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error
func NewConfigError(message string, cause error) *InitError {
	return &InitError{
		Type:    ErrorTypeConfig,
		Message: message,
		Cause:   cause,
	}
}

// NewTrackerError creates a new tracker connection error
func NewTrackerError(message string, cause error) *InitError {
	return &InitError{
		Type:    ErrorTypeTracker,
		Message: message,
		Cause:   cause,
	}
}

// NewFileSystemError creates a new file system error
func NewFileSystemError(message string, cause error) *InitError {
	return &InitError{
		Type:    ErrorTypeFileSystem,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *InitError {
	return &InitError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// HandleInitError writes a description of err and what to try next to w
func HandleInitError(w io.Writer, err error) {
	if err == nil {
		return
	}

	var initErr *InitError
	if !errors.As(err, &initErr) {
		fmt.Fprintf(w, "Unexpected error: %v\n", err)
		fmt.Fprintln(w, "Please report this issue at: https://github.com/yahsan2/yt-list/issues")
		return
	}

	switch initErr.Type {
	case ErrorTypeConfig:
		fmt.Fprintf(w, "Configuration error: %v\n", initErr)
		fmt.Fprintln(w, "Please check your .yt-list.yml file format and try again.")
	case ErrorTypeTracker:
		fmt.Fprintf(w, "Tracker error: %v\n", initErr)
		switch {
		case errors.Is(initErr, youtrack.ErrAuth):
			fmt.Fprintln(w, "Please check the user and password, and that REST login is enabled on the tracker.")
		case errors.Is(initErr, youtrack.ErrTransport):
			fmt.Fprintln(w, "Please check the tracker URL and your network connection.")
		default:
			fmt.Fprintln(w, "Please check the tracker URL and credentials.")
		}
	case ErrorTypeFileSystem:
		fmt.Fprintf(w, "File system error: %v\n", initErr)
		fmt.Fprintln(w, "Please check file permissions and disk space.")
	case ErrorTypeValidation:
		fmt.Fprintf(w, "Validation error: %v\n", initErr)
		fmt.Fprintln(w, "Please check your input values and try again.")
	default:
		fmt.Fprintf(w, "Error: %v\n", initErr)
	}
}
