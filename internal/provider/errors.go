package provider

import "errors"

var (
	// ErrDeviceUnavailable is returned by a fetch that could not read the
	// watch, e.g. the simulated random failure.
	ErrDeviceUnavailable = errors.New("device data unavailable")

	// ErrInvalidRecord is returned when the bridge sends a record that
	// fails validation.
	ErrInvalidRecord = errors.New("invalid health record")

	// ErrUnknownProviderKind is returned by [New] for an unsupported kind.
	ErrUnknownProviderKind = errors.New("unknown provider kind")
)

// Bridge errors mapped from HTTP status codes.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("bridge unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")
)
