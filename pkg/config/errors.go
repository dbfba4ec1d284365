package config

import "errors"

// Sentinel errors for configuration failure modes.
// Callers should use errors.Is() to check for these.
var (
	// ErrInvalidConfig indicates the file could not be decoded, or a known
	// key holds something other than a string.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInsecurePermissions indicates group or others have any access to
	// the file, or its owner cannot read and write it.
	ErrInsecurePermissions = errors.New("config: insecure file permissions")

	// ErrMissingRequired indicates a required value was neither in the
	// file nor supplied at the prompt.
	ErrMissingRequired = errors.New("config: missing required field")
)
