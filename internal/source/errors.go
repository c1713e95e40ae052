package source

import "errors"

// Fetch failure taxonomy. The aggregator recovers all of these per
// source; they are exported so tests and logs can tell them apart.
var (
	// ErrSourceUnavailable covers non-2xx responses and connection failures.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSourceTimeout covers deadline and client timeout failures.
	ErrSourceTimeout = errors.New("source timeout")
	// ErrDecode covers malformed payloads.
	ErrDecode = errors.New("malformed source payload")
)
