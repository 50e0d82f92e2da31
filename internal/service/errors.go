package service

import (
	"errors"
	"fmt"

	"github.com/hongminglow/driveops-be/internal/storage"
)

// Kind classifies a service failure for the transport layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a failure with a message safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
	ErrInvalidCredentials = &Error{Kind: KindUnauthenticated, Message: "invalid email or password"}
	// ErrAlreadyReviewed is returned when reviewing an application that is no longer pending.
	ErrAlreadyReviewed = errors.New("application has already been reviewed")
)

func validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

// storeErr turns storage sentinels into caller-facing errors about entity.
// Unknown errors are wrapped and left for the transport layer to log.
func storeErr(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: entity + " not found", Err: err}
	case errors.Is(err, storage.ErrAlreadyExists):
		return &Error{Kind: KindConflict, Message: entity + " already exists", Err: err}
	case errors.Is(err, storage.ErrInUse):
		return &Error{Kind: KindConflict, Message: entity + " is referenced by other records", Err: err}
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	return fmt.Errorf("%s: %w", entity, err)
}
