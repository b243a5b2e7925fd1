package pg

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("pg: failed to parse database config")
	ErrFailedToOpenDBConnection = errors.New("pg: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("pg: healthcheck failed")

	ErrFailedToApplyMigrations  = errors.New("pg: failed to apply migrations")
	ErrMigrationsDirNotFound    = errors.New("pg: migrations directory not found")
	ErrMigrationPathNotProvided = errors.New("pg: migrations path not provided")
)
