package formats

import "errors"

var (
	// ErrUnknownFormat reports a command that referenced an id not in the snapshot.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrInvalidFormat reports rejected record content.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrBuiltinProtected reports a mutation built-in formats do not allow.
	ErrBuiltinProtected = errors.New("built-in format cannot be changed this way")
	// ErrNotReady reports a command issued before Bootstrap completed.
	ErrNotReady = errors.New("format catalog not loaded")
)
