package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidHeartRate  = errors.New("heart rate out of range")
	ErrInvalidSteps      = errors.New("steps out of range")
	ErrInvalidSleepHours = errors.New("sleep hours out of range")
	ErrInvalidScreenTime = errors.New("screen time out of range")
	ErrMissingTimestamp  = errors.New("timestamp is required")
	ErrTimestampInFuture = errors.New("timestamp is in the future")
)
