package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrResolution means the target account could not be resolved.
	ErrResolution = errors.New("account resolution failed")
	// ErrAuthentication means the supplied token did not authenticate.
	ErrAuthentication = errors.New("authentication failed")
	// ErrRepositoryCreation means the destination repository could not be ensured.
	ErrRepositoryCreation = errors.New("repository creation failed")
	// ErrPersistence means a configuration document could not be written.
	ErrPersistence = errors.New("persistence failed")
)

// ProvisionError carries the structured detail of a fatal workflow error:
// which kind of precondition failed, the offending field and a remediation hint.
type ProvisionError struct {
	Kind  error
	Field string
	Hint  string
	Err   error
}

// NewProvisionError wraps err under the given kind.
func NewProvisionError(kind error, field, hint string, err error) *ProvisionError {
	return &ProvisionError{Kind: kind, Field: field, Hint: hint, Err: err}
}

func (e *ProvisionError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProvisionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
