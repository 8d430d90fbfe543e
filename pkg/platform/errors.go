package platform

import "errors"

var (
	// ErrMissingBaseURL indicates a client was constructed without a base URL.
	ErrMissingBaseURL = errors.New("platform: missing base URL")

	// ErrUnexpectedStatus indicates the backend responded with a non-success status.
	ErrUnexpectedStatus = errors.New("platform: unexpected response status")

	// ErrMalformedResponse indicates the backend response body could not be decoded.
	ErrMalformedResponse = errors.New("platform: malformed response body")
)
