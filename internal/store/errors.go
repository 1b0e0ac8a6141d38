package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrSavingRecord is returned when an INSERT of a health record fails.
	ErrSavingRecord = errors.New("failed to save health record")

	// ErrRecordNotSaved is returned when an INSERT completes without error
	// but affects no rows.
	ErrRecordNotSaved = errors.New("health record was not saved")

	// ErrUnsupportedDSN is returned when the configured DSN cannot be mapped
	// to a storage backend.
	ErrUnsupportedDSN = errors.New("unsupported storage dsn")
)

// Low-level database operation errors, wrapped together with the driver error.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan health record row")

	// ErrScanningRows is returned when row iteration reports an error.
	ErrScanningRows = errors.New("failed to scan health record rows")
)
