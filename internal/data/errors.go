package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Job repository sentinels.
	ErrJobNotFound = errors.New("job not found")

	// User repository sentinels.
	ErrUserNotFound = errors.New("user not found")

	// Application repository sentinels.
	ErrApplicationNotFound = errors.New("application not found")
)
