package domain

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

type ConflictError struct {
	Resource string
	Msg      string
}

func (e ConflictError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s conflict", e.Resource)
	}
	return e.Msg
}

type ForbiddenError struct {
	Reason string
}

func (e ForbiddenError) Error() string {
	if e.Reason == "" {
		return "forbidden"
	}
	return e.Reason
}

type UnauthenticatedError struct{}

func (e UnauthenticatedError) Error() string { return "authentication required" }

type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

type UpstreamError struct {
	Service string
	Err     error
}

func (e UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s unavailable", e.Service)
	}
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e UpstreamError) Unwrap() error { return e.Err }

// Named rule violations. These are plain comparable values so services
// can return them directly and callers can match with errors.Is.
var (
	ErrInvalidTimeRange = ValidationError{Field: "arrival_time", Msg: "must be after departure_time"}
	ErrInvalidAmount    = ValidationError{Field: "amount", Msg: "must be greater than zero"}
	ErrInvalidCapacity  = ValidationError{Field: "capacity", Msg: "must be greater than zero"}
	ErrInvalidStatus    = ValidationError{Field: "status", Msg: "must be one of pending, completed, failed"}

	ErrDuplicateBooking = ConflictError{Resource: "booking", Msg: "passenger already has a booking for this trip"}
	ErrSeatTaken        = ConflictError{Resource: "ticket", Msg: "seat already taken on this trip"}
)

// Forbidden wraps an access-control deny reason.
func Forbidden(reason string) error { return ForbiddenError{Reason: reason} }

// NotFound reports an absent resource. Also used when a resource exists
// but sits outside the caller's visibility scope, so existence never
// leaks.
func NotFound(resource string) error { return NotFoundError{Resource: resource} }

// DuplicateKey reports a unique-constraint violation on reference data.
func DuplicateKey(resource, msg string) error { return ConflictError{Resource: resource, Msg: msg} }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsUnauthenticated(err error) bool {
	var target UnauthenticatedError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}
