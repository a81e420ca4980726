package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
	ErrLookupFailed                 = errors.New("capacity lookup failed")
	ErrInvalidCounter               = errors.New("capacity counter is not an integer")
)
