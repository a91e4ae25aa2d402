package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLocalSessionNotFound is returned by Load when no session is stored.
	ErrLocalSessionNotFound = errors.New("local session not found")

	// ErrSessionNotSaved is returned when an upsert of the session affects no
	// rows.
	ErrSessionNotSaved = errors.New("session was not saved")

	// ErrCorruptedSession is returned when a stored session cannot be opened,
	// typically because the sealing secret changed.
	ErrCorruptedSession = errors.New("stored session is corrupted")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan session row")
)
