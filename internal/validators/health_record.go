package validators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/wear-health-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldHeartRate         = "heart_rate"
	FieldSteps             = "steps"
	FieldSleepHours        = "sleep_hours"
	FieldScreenTimeMinutes = "screen_time_minutes"
	FieldTimestamp         = "timestamp"
)

// Physiologically plausible bounds for a single daily reading.
const (
	minHeartRate        = 20
	maxHeartRate        = 250
	maxSteps            = 200_000
	maxSleepHours       = 24.0
	maxScreenTimeMinute = 24 * 60

	// clockSkew tolerates watch clocks slightly ahead of the host.
	clockSkew = 5 * time.Minute
)

var allHealthRecordFields = []string{
	FieldHeartRate,
	FieldSteps,
	FieldSleepHours,
	FieldScreenTimeMinutes,
	FieldTimestamp,
}

// HealthRecordValidator rejects readings that cannot come from a real
// watch: out-of-range metrics, a missing timestamp or one from the future.
type HealthRecordValidator struct {
	now func() time.Time
}

// NewHealthRecordValidator constructs a HealthRecordValidator and returns
// it as the Validator interface.
func NewHealthRecordValidator() Validator {
	return &HealthRecordValidator{now: time.Now}
}

// Validate accepts models.HealthRecord or *models.HealthRecord and returns
// ErrUnsupportedType for anything else. With no fields every field is
// checked. All violations are reported, joined with [errors.Join].
func (v *HealthRecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.HealthRecord:
		return v.validateHealthRecord(ctx, value, fields...)
	case *models.HealthRecord:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateHealthRecord(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *HealthRecordValidator) validateHealthRecord(_ context.Context, rec models.HealthRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = allHealthRecordFields
	}

	var errs []error
	for _, field := range fields {
		if err := v.validateField(rec, field); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (v *HealthRecordValidator) validateField(rec models.HealthRecord, field string) error {
	switch field {
	case FieldHeartRate:
		if rec.HeartRate < minHeartRate || rec.HeartRate > maxHeartRate {
			return fmt.Errorf("%w: %d", ErrInvalidHeartRate, rec.HeartRate)
		}
	case FieldSteps:
		if rec.Steps < 0 || rec.Steps > maxSteps {
			return fmt.Errorf("%w: %d", ErrInvalidSteps, rec.Steps)
		}
	case FieldSleepHours:
		if rec.SleepHours < 0 || rec.SleepHours > maxSleepHours {
			return fmt.Errorf("%w: %v", ErrInvalidSleepHours, rec.SleepHours)
		}
	case FieldScreenTimeMinutes:
		if rec.ScreenTimeMinutes < 0 || rec.ScreenTimeMinutes > maxScreenTimeMinute {
			return fmt.Errorf("%w: %d", ErrInvalidScreenTime, rec.ScreenTimeMinutes)
		}
	case FieldTimestamp:
		if rec.Timestamp.IsZero() {
			return ErrMissingTimestamp
		}
		if rec.Timestamp.After(v.now().Add(clockSkew)) {
			return fmt.Errorf("%w: %s", ErrTimestampInFuture, rec.Timestamp.Format(time.RFC3339))
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}
