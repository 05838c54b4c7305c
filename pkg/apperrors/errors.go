package apperrors

import "errors"

// ValidationError reports malformed or unsupported input (bad URL, bad filter values,
// contradictory field/status combinations).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an unknown entity (link, bot, user).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ConflictError reports a uniqueness violation (duplicate platform assignment,
// duplicate bot credential).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// DependencyError reports an external collaborator (extraction service, delivery
// provider) being unreachable or rejecting a request.
type DependencyError struct {
	Message string
	Err     error
}

func (e *DependencyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// ResourceLimitError reports a payload exceeding a provider cap.
type ResourceLimitError struct {
	Message string
}

func (e *ResourceLimitError) Error() string {
	return e.Message
}

// IOError reports a local filesystem failure during materialization or cleanup.
type IOError struct {
	Message string
	Err     error
}

func (e *IOError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsValidation checks whether the error is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound checks whether the error is a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict checks whether the error is a ConflictError
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsDependency checks whether the error is a DependencyError
func IsDependency(err error) bool {
	var target *DependencyError
	return errors.As(err, &target)
}

// IsResourceLimit checks whether the error is a ResourceLimitError
func IsResourceLimit(err error) bool {
	var target *ResourceLimitError
	return errors.As(err, &target)
}

// IsIO checks whether the error is an IOError
func IsIO(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}
