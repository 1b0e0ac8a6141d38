package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/utils"
	"github.com/MKhiriev/wear-health-sync/models"
)

// healthRecordRepository is the SQL implementation of [HealthRecordRepository].
// It works against both PostgreSQL and SQLite; the dialect-specific bits
// live in [DB].
type healthRecordRepository struct {
	db     *DB
	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewHealthRecordRepository constructs a [HealthRecordRepository] backed by db.
func NewHealthRecordRepository(db *DB, logger *logger.Logger) HealthRecordRepository {
	logger.Debug().Msg("creating health record repository")
	return &healthRecordRepository{
		db:     db,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: logger,
	}
}

// Save inserts rec into health_records. Records are immutable, so there is
// no upsert path: saving the same ID twice is a constraint violation.
func (r *healthRecordRepository) Save(ctx context.Context, rec models.HealthRecord) error {
	log := logger.FromContext(ctx)

	if rec.ID == "" {
		rec = rec.WithID(r.ids.Generate())
	}

	query, args, err := r.db.buildInsertRecordQuery(rec, r.now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*healthRecordRepository.Save").Msg("error building insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*healthRecordRepository.Save").
			Str("id", rec.ID).
			Str("classification", r.classify(err).String()).
			Msg("failed to insert health record")
		return fmt.Errorf("%w: %w", ErrSavingRecord, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*healthRecordRepository.Save").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Error().Str("func", "*healthRecordRepository.Save").Str("id", rec.ID).Msg("no rows were inserted")
		return ErrRecordNotSaved
	}

	return nil
}

// QueryRecent returns up to limit records, newest first.
func (r *healthRecordRepository) QueryRecent(ctx context.Context, limit int) ([]models.HealthRecord, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		return []models.HealthRecord{}, nil
	}

	query, args, err := r.db.buildSelectRecentQuery(limit)
	if err != nil {
		log.Err(err).Str("func", "*healthRecordRepository.QueryRecent").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*healthRecordRepository.QueryRecent").
			Int("limit", limit).
			Str("classification", r.classify(err).String()).
			Msg("failed to query recent health records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.HealthRecord, 0, limit)
	for rows.Next() {
		var rec models.HealthRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.HeartRate,
			&rec.Steps,
			&rec.SleepHours,
			&rec.ScreenTimeMinutes,
			&rec.Timestamp,
		); err != nil {
			log.Err(err).Str("func", "*healthRecordRepository.QueryRecent").Msg("failed to scan health record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rec.Timestamp = rec.Timestamp.UTC()
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*healthRecordRepository.QueryRecent").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// GetLatest returns the newest stored record or nil if none exist.
func (r *healthRecordRepository) GetLatest(ctx context.Context) (*models.HealthRecord, error) {
	records, err := r.QueryRecent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	return &records[0], nil
}

func (r *healthRecordRepository) classify(err error) ErrorClassification {
	if r.db.errorClassificator == nil {
		return NonRetryable
	}
	return r.db.errorClassificator.Classify(err)
}
