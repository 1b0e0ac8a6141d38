package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the repository whether a failed statement is
// worth another sync cycle or points at a broken schema or bad data.
type ErrorClassification int

const (
	// NonRetryable is the default for unknown errors, constraint violations
	// and schema problems.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures: lost connections, server restarts,
	// lock contention.
	Retryable
)

// String returns the log-friendly name of the classification.
func (c ErrorClassification) String() string {
	if c == Retryable {
		return "retryable"
	}
	return "non-retryable"
}

// retryablePgCodes are SQLSTATE codes after which the next timer tick can
// reasonably expect the INSERT into health_records to go through.
var retryablePgCodes = map[string]struct{}{
	// class 08, connection exception
	pgerrcode.ConnectionException:                           {},
	pgerrcode.ConnectionDoesNotExist:                        {},
	pgerrcode.ConnectionFailure:                             {},
	pgerrcode.SQLClientUnableToEstablishSQLConnection:       {},
	pgerrcode.SQLServerRejectedEstablishmentOfSQLConnection: {},
	// class 40, transaction rollback
	pgerrcode.TransactionRollback:  {},
	pgerrcode.SerializationFailure: {},
	pgerrcode.DeadlockDetected:     {},
	// class 53, insufficient resources
	pgerrcode.TooManyConnections: {},
	// class 55, lock not available
	pgerrcode.LockNotAvailable: {},
	// class 57, operator intervention
	pgerrcode.AdminShutdown:    {},
	pgerrcode.CrashShutdown:    {},
	pgerrcode.CannotConnectNow: {},
}

// PostgresErrorClassifier implements [ErrorClassificator] for errors coming
// from the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not a
// *pgconn.PgError are [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}
	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps a SQLSTATE code to an [ErrorClassification].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if pgErr == nil {
		return NonRetryable
	}
	if _, ok := retryablePgCodes[pgErr.Code]; ok {
		return Retryable
	}
	return NonRetryable
}
