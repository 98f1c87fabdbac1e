package reconciliation

import "errors"

var (
	// ErrExtractionFailure: one document's table extraction failed.
	ErrExtractionFailure = errors.New("table extraction failed")

	// ErrSchemaMismatch: an extracted table does not have the expected shape.
	ErrSchemaMismatch = errors.New("extracted table shape unexpected")

	// ErrUpdateFailure: the remote status-update call failed for one reservation.
	ErrUpdateFailure = errors.New("reservation status update failed")
)
