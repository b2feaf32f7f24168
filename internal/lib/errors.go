package lib

import (
	"errors"
	"fmt"
	"strings"
)

// AppError represents a user-friendly error with context and guidance
type AppError struct {
	Category    ErrorCategory
	Message     string   // Short description of what went wrong
	Cause       error    // Underlying error
	Guidance    []string // What the user can do to fix it
	HTTPStatus  int      // HTTP status code if applicable
	IsRetryable bool     // Would a manual retry plausibly succeed?
}

// ErrorCategory classifies errors for better UX
type ErrorCategory string

const (
	CategoryNetwork       ErrorCategory = "network"
	CategoryFileSystem    ErrorCategory = "filesystem"
	CategoryValidation    ErrorCategory = "validation"
	CategoryService       ErrorCategory = "service"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryJob           ErrorCategory = "job"
)

// Error implements the error interface
func (e *AppError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] ", strings.ToUpper(string(e.Category))))
	sb.WriteString(e.Message)

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if e.HTTPStatus > 0 {
		sb.WriteString(fmt.Sprintf(" (HTTP %d)", e.HTTPStatus))
	}

	return sb.String()
}

// UserMessage returns a formatted message suitable for displaying to end users
func (e *AppError) UserMessage() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	if len(e.Guidance) > 0 {
		sb.WriteString("\nHow to fix:\n")
		for i, guide := range e.Guidance {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, guide))
		}
	}

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("\nTechnical details: %v\n", e.Cause))
	}

	if e.IsRetryable {
		sb.WriteString("\nThis error is transient; running the command again may succeed.\n")
	}

	return sb.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Network Errors

// ErrNetworkUnreachable creates an error for network connectivity issues
func ErrNetworkUnreachable(url string, cause error) *AppError {
	return &AppError{
		Category: CategoryNetwork,
		Message:  fmt.Sprintf("Cannot reach calculation service at %s", url),
		Cause:    cause,
		Guidance: []string{
			"Check that the calculation service is running",
			fmt.Sprintf("Verify the base URL is correct: %s", url),
			"Check your network connection",
		},
		IsRetryable: true,
	}
}

// Input Errors

// ErrRequiredField creates an error for a missing or zero required input
func ErrRequiredField(field string, hint string) *AppError {
	return &AppError{
		Category: CategoryValidation,
		Message:  fmt.Sprintf("Required field %s must be provided and nonzero", field),
		Guidance: []string{
			hint,
			"Load a preset with --preset to start from known-good values",
		},
		IsRetryable: false,
	}
}

// ErrCombinationRejected creates an error for a blocked species/target pair
func ErrCombinationRejected(species, element, reason string) *AppError {
	msg := fmt.Sprintf("Solving species %s cannot be used with target element %s", species, element)
	if reason != "" {
		msg += ": " + reason
	}
	return &AppError{
		Category: CategoryValidation,
		Message:  msg,
		Guidance: []string{
			"Choose a different solving species with --species",
			"Use 'ladle options' to list recommended species per target",
		},
		IsRetryable: false,
	}
}

// Service Errors

// ErrServiceRejected creates an error for a request the service refused
func ErrServiceRejected(statusCode int, message string) *AppError {
	return &AppError{
		Category:   CategoryService,
		Message:    fmt.Sprintf("Calculation service rejected the request: %s", message),
		HTTPStatus: statusCode,
		Guidance: []string{
			"Check the reported field errors and adjust the inputs",
			"Run again once the request is corrected",
		},
		IsRetryable: statusCode >= 500,
	}
}

// Configuration Errors

// ErrInvalidConfig creates an error for configuration validation failures
func ErrInvalidConfig(field string, reason string) *AppError {
	return &AppError{
		Category: CategoryConfiguration,
		Message:  fmt.Sprintf("Invalid configuration: %s", reason),
		Guidance: []string{
			fmt.Sprintf("Check the '%s' field in your config file", field),
			"Compare with ladle.example.yaml for correct format",
		},
		IsRetryable: false,
	}
}

// Job Errors

// ErrJobNotFound creates an error for an unknown job id
func ErrJobNotFound(jobID string) *AppError {
	return &AppError{
		Category: CategoryJob,
		Message:  fmt.Sprintf("Job '%s' not found", jobID),
		Guidance: []string{
			"Check the job ID is correct",
			"Use 'ladle job list' to see recent jobs",
		},
		IsRetryable: false,
	}
}

// Helper Functions

// WrapError wraps a standard error with AppError context
func WrapError(category ErrorCategory, message string, cause error, guidance ...string) *AppError {
	return &AppError{
		Category:    category,
		Message:     message,
		Cause:       cause,
		Guidance:    guidance,
		IsRetryable: IsNetworkError(cause),
	}
}

// ClassifyError examines an error and returns appropriate user guidance
func ClassifyError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if IsNetworkError(err) {
		return &AppError{
			Category:    CategoryNetwork,
			Message:     "Network connectivity issue",
			Cause:       err,
			Guidance:    []string{"Check network connection", "Verify the calculation service is running"},
			IsRetryable: true,
		}
	}

	if containsIgnoreCase(err.Error(), "permission denied") {
		return &AppError{
			Category:    CategoryFileSystem,
			Message:     "Permission denied",
			Cause:       err,
			Guidance:    []string{"Check file/directory permissions", "Use --out to choose another location"},
			IsRetryable: false,
		}
	}

	return &AppError{
		Category:    CategoryValidation,
		Message:     "An error occurred",
		Cause:       err,
		Guidance:    []string{"Check the technical details below", "Re-run with --verbose for more information"},
		IsRetryable: false,
	}
}
