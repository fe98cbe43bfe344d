package stage

import (
	"errors"
	"fmt"
)

// Sentinel errors for stage construction and prerequisite checks. The
// archive and publish error taxonomies live next to the operations that
// raise them, in the k6 and configmap packages.
var (
	// ErrNamespaceRequired indicates that a namespace was not provided
	ErrNamespaceRequired = errors.New("namespace is required")

	// ErrClusterConnection indicates failure to connect to the cluster
	ErrClusterConnection = errors.New("failed to connect to cluster")

	// ErrPrerequisiteNotMet indicates a required collaborator is missing
	ErrPrerequisiteNotMet = errors.New("prerequisite not met")
)

// PrerequisiteError represents a failed prerequisite check
type PrerequisiteError struct {
	Component string
	Err       error
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("prerequisite check failed for %s: %v", e.Component, e.Err)
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}

func (e *PrerequisiteError) Is(target error) bool {
	return target == ErrPrerequisiteNotMet
}

// NewPrerequisiteError creates a new PrerequisiteError
func NewPrerequisiteError(component string, err error) *PrerequisiteError {
	return &PrerequisiteError{
		Component: component,
		Err:       err,
	}
}

// CleanupError represents errors during cleanup operations
type CleanupError struct {
	Phase string
	Errs  []error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup failed during %s phase: %v", e.Phase, errors.Join(e.Errs...))
}

func (e *CleanupError) Unwrap() error {
	return errors.Join(e.Errs...)
}

// NewCleanupError creates a new CleanupError
func NewCleanupError(phase string, errs ...error) *CleanupError {
	return &CleanupError{
		Phase: phase,
		Errs:  errs,
	}
}
