package redisconn

import "errors"

var (
	// ErrEmptyConnectionURL indicates no connection URL was configured.
	ErrEmptyConnectionURL = errors.New("redisconn: empty connection URL")

	// ErrInvalidConnectionURL indicates the connection URL could not be parsed.
	ErrInvalidConnectionURL = errors.New("redisconn: invalid connection URL")

	// ErrNotReady indicates the server did not become ready within the allotted time.
	ErrNotReady = errors.New("redisconn: redis did not become ready in time")

	// ErrHealthcheckFailed indicates a readiness probe failed.
	ErrHealthcheckFailed = errors.New("redisconn: healthcheck failed")
)
