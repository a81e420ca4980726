package pg

import "errors"

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrEmptyConnectionString    = errors.New("empty postgres connection string, use KG_PG_CONN_URL env var")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrInvalidIdentifier        = errors.New("invalid table or column name")
	ErrLookupFailed             = errors.New("uniqueness lookup failed")
)
