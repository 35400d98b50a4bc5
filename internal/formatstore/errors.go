package formatstore

import "errors"

var (
	// ErrStorageUnavailable reports that the database could not be opened or initialized.
	ErrStorageUnavailable = errors.New("format storage unavailable")
	// ErrWriteRejected reports a failed upsert or delete.
	ErrWriteRejected = errors.New("format write rejected")
	// ErrReadFailed reports a failed read of the stored records.
	ErrReadFailed = errors.New("format read failed")
)
