package validators

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/wear-health-sync/models"
)

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator() *HealthRecordValidator {
	return &HealthRecordValidator{now: func() time.Time { return fixedNow }}
}

func validRecord() models.HealthRecord {
	return models.HealthRecord{
		HeartRate:         72,
		Steps:             5000,
		SleepHours:        7.5,
		ScreenTimeMinutes: 60,
		Timestamp:         fixedNow.Add(-time.Minute),
	}
}

func TestHealthRecordValidator_Valid(t *testing.T) {
	v := newTestValidator()
	rec := validRecord()

	assert.NoError(t, v.Validate(context.Background(), rec))
	assert.NoError(t, v.Validate(context.Background(), &rec))
}

func TestHealthRecordValidator_TableTest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.HealthRecord)
		wantErr error
	}{
		{name: "heart rate too low", mutate: func(r *models.HealthRecord) { r.HeartRate = 0 }, wantErr: ErrInvalidHeartRate},
		{name: "heart rate too high", mutate: func(r *models.HealthRecord) { r.HeartRate = 300 }, wantErr: ErrInvalidHeartRate},
		{name: "negative steps", mutate: func(r *models.HealthRecord) { r.Steps = -1 }, wantErr: ErrInvalidSteps},
		{name: "absurd steps", mutate: func(r *models.HealthRecord) { r.Steps = 1_000_000 }, wantErr: ErrInvalidSteps},
		{name: "negative sleep", mutate: func(r *models.HealthRecord) { r.SleepHours = -0.5 }, wantErr: ErrInvalidSleepHours},
		{name: "sleep over a day", mutate: func(r *models.HealthRecord) { r.SleepHours = 25 }, wantErr: ErrInvalidSleepHours},
		{name: "negative screen time", mutate: func(r *models.HealthRecord) { r.ScreenTimeMinutes = -5 }, wantErr: ErrInvalidScreenTime},
		{name: "screen time over a day", mutate: func(r *models.HealthRecord) { r.ScreenTimeMinutes = 1441 }, wantErr: ErrInvalidScreenTime},
		{name: "missing timestamp", mutate: func(r *models.HealthRecord) { r.Timestamp = time.Time{} }, wantErr: ErrMissingTimestamp},
		{name: "future timestamp", mutate: func(r *models.HealthRecord) { r.Timestamp = fixedNow.Add(time.Hour) }, wantErr: ErrTimestampInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			err := newTestValidator().Validate(context.Background(), rec)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHealthRecordValidator_BoundsAreInclusive(t *testing.T) {
	rec := models.HealthRecord{
		HeartRate:         maxHeartRate,
		Steps:             0,
		SleepHours:        maxSleepHours,
		ScreenTimeMinutes: maxScreenTimeMinute,
		Timestamp:         fixedNow.Add(clockSkew),
	}

	assert.NoError(t, newTestValidator().Validate(context.Background(), rec))
}

func TestHealthRecordValidator_ReportsAllViolations(t *testing.T) {
	rec := models.HealthRecord{HeartRate: 1, Steps: -1}

	err := newTestValidator().Validate(context.Background(), rec)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidHeartRate)
	assert.ErrorIs(t, err, ErrInvalidSteps)
	assert.ErrorIs(t, err, ErrMissingTimestamp)
}

func TestHealthRecordValidator_FieldScoping(t *testing.T) {
	rec := validRecord()
	rec.HeartRate = 999

	v := newTestValidator()

	assert.NoError(t, v.Validate(context.Background(), rec, FieldSteps, FieldTimestamp))
	assert.ErrorIs(t, v.Validate(context.Background(), rec, FieldHeartRate), ErrInvalidHeartRate)
	assert.ErrorIs(t, v.Validate(context.Background(), rec, "blood_type"), ErrUnknownField)
}

func TestHealthRecordValidator_UnsupportedType(t *testing.T) {
	v := newTestValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), "record"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), (*models.HealthRecord)(nil)), ErrUnsupportedType)
}
