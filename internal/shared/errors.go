package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig   = fmt.Errorf("configuration not found")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
	ErrMissingClientID = fmt.Errorf("missing client id")

	// Authentication errors
	ErrAuthFailed     = fmt.Errorf("authentication failed")
	ErrAuthDenied     = fmt.Errorf("authorization denied")
	ErrStateMismatch  = fmt.Errorf("state parameter mismatch")
	ErrTokenExpired   = fmt.Errorf("access token expired")
	ErrNoRefreshToken = fmt.Errorf("no refresh token available")
	ErrTimeout        = fmt.Errorf("operation timed out")

	// Storage errors
	ErrTokenNotFound  = fmt.Errorf("no stored token")
	ErrPinNotFound    = fmt.Errorf("pin not found")
	ErrDuplicateAlias = fmt.Errorf("alias already pinned")

	// Daemon errors
	ErrDaemonRunning    = fmt.Errorf("daemon already running")
	ErrDaemonNotRunning = fmt.Errorf("daemon not running")
)
