package service

import "errors"

// Sync failure taxonomy. Returned errors wrap one of these together with the
// collaborator's cause, match with [errors.Is].
var (
	ErrPermissionDenied = errors.New("health data permission denied")
	ErrConnection       = errors.New("watch connection failed")
	ErrFetch            = errors.New("health data fetch failed")
	ErrPersist          = errors.New("health record persist failed")
	ErrQuery            = errors.New("health history query failed")

	// ErrAlreadySyncing is returned for a trigger dropped because a cycle
	// was already running.
	ErrAlreadySyncing = errors.New("sync already in progress")

	errDeviceNotConnected = errors.New("device not connected")
)

var (
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
