package store

import (
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/wear-health-sync/models"
)

const healthRecordsTable = "health_records"

var healthRecordColumns = []string{
	"id",
	"heart_rate",
	"steps",
	"sleep_hours",
	"screen_time_minutes",
	"recorded_at",
}

func (db *DB) builder() sq.StatementBuilderType {
	placeholder := db.placeholder
	if placeholder == nil {
		placeholder = sq.Question
	}
	return sq.StatementBuilder.PlaceholderFormat(placeholder)
}

// buildInsertRecordQuery builds the INSERT for a single record. createdAt is
// the store-side wall clock, recorded_at is the record's own timestamp.
func (db *DB) buildInsertRecordQuery(rec models.HealthRecord, createdAt any) (string, []any, error) {
	return db.builder().
		Insert(healthRecordsTable).
		Columns(append(slices.Clone(healthRecordColumns), "created_at")...).
		Values(
			rec.ID,
			rec.HeartRate,
			rec.Steps,
			rec.SleepHours,
			rec.ScreenTimeMinutes,
			rec.Timestamp.UTC(),
			createdAt,
		).
		ToSql()
}

// buildSelectRecentQuery builds the newest-first SELECT bounded by limit.
// Ties on recorded_at fall back to id, which is time-ordered for UUIDv7.
func (db *DB) buildSelectRecentQuery(limit int) (string, []any, error) {
	return db.builder().
		Select(healthRecordColumns...).
		From(healthRecordsTable).
		OrderBy("recorded_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
}
