package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// ConflictError covers uniqueness violations and guarded state
// transitions attempted from a terminal state.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

// AttachmentUploadError signals that an order submission stopped because
// one of its photos could not be written to object storage. Filename
// names the object that failed so the caller can tell the user which
// image is missing.
type AttachmentUploadError struct {
	Message  string
	Filename string
	Cause    error
}

func (e *AttachmentUploadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AttachmentUploadError) Unwrap() error {
	return e.Cause
}

func NewAttachmentUploadError(message, filename string, cause error) *AttachmentUploadError {
	return &AttachmentUploadError{
		Message:  message,
		Filename: filename,
		Cause:    cause,
	}
}

func IsAttachmentUploadError(err error) (*AttachmentUploadError, bool) {
	if ae, ok := err.(*AttachmentUploadError); ok {
		return ae, true
	}
	return nil, false
}

// ExternalServiceError marks failures of collaborators outside the data
// store, such as the postal-code lookup or the notification broker.
type ExternalServiceError struct {
	Service string
	Message string
	Cause   error
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}

func NewExternalServiceError(service, message string, cause error) *ExternalServiceError {
	return &ExternalServiceError{
		Service: service,
		Message: message,
		Cause:   cause,
	}
}

func IsExternalServiceError(err error) (*ExternalServiceError, bool) {
	if ee, ok := err.(*ExternalServiceError); ok {
		return ee, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

func IsInternalError(err error) (*InternalError, bool) {
	if ie, ok := err.(*InternalError); ok {
		return ie, true
	}
	return nil, false
}
