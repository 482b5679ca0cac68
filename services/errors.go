package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a service failure so HTTP adapters can pick the
// right response without string matching.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindAccessDenied
	KindInvalidTransition
	KindPolicyViolation
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAccessDenied:
		return "access_denied"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindPolicyViolation:
		return "policy_violation"
	case KindPersistence:
		return "persistence_failure"
	default:
		return "unknown"
	}
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newNotFound(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func newAccessDenied(message string) *ServiceError {
	return &ServiceError{Kind: KindAccessDenied, Message: message}
}

func newInvalidTransition(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidTransition, Message: message}
}

func newPolicyViolation(message string) *ServiceError {
	return &ServiceError{Kind: KindPolicyViolation, Message: message}
}

func newPersistence(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf extracts the ErrorKind from err, or 0 when err carries none.
func KindOf(err error) ErrorKind {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return 0
}

// wrapPersistence keeps kind-tagged errors intact and tags everything
// else as a persistence failure.
func wrapPersistence(message string, err error) error {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	return newPersistence(message, err)
}
