package domain

import (
	"errors"
	"fmt"
)

// Error codes for domain errors
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeFileNotFound = "FILE_NOT_FOUND"
	ErrCodeConfigError  = "CONFIG_ERROR"
	ErrCodeReportError  = "REPORT_ERROR"
	ErrCodeOutputError  = "OUTPUT_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) *DomainError {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) *DomainError {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *DomainError {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewReportError creates a report persistence error
func NewReportError(message string, cause error) *DomainError {
	return NewDomainError(ErrCodeReportError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) *DomainError {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// HasCode reports whether err is a DomainError with the given code
func HasCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
