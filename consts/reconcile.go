package consts

const (
	// Reservation status values owned by the record store
	StatusPending = "pending"
	StatusPaid    = "paid"

	// Canonical invoice table shape
	ExpectedColumnCount = 6

	// Default config
	DefaultMaxDocuments  = 30
	DefaultPageSize      = 100
	DefaultWorkerNumber  = 1
	DefaultIntervalInSec = 2
)
