package entity

import "time"

// SessionReport summarizes one reconciliation run. Created once at the end of
// processing and appended to the sessions audit log.
type SessionReport struct {
	StartTime           time.Time    `json:"start_time"`
	EndTime             time.Time    `json:"end_time"`
	DocumentCount       int          `json:"pdf_count"`
	RowsExtracted       int          `json:"invoices_extracted"`
	ReservationsUpdated int          `json:"pages_updated"`
	UnresolvedRows      []InvoiceRow `json:"absent_invoices"`
}
