package reconciliation

import (
	"time"

	"github.com/Yalishenda/Invoice-Handler/entity"
)

// Summarize aggregates one run's counts into a session report.
func Summarize(start, end time.Time, documentCount, rowsExtracted, reservationsUpdated int, unresolved []entity.InvoiceRow) entity.SessionReport {
	return entity.SessionReport{
		StartTime:           start,
		EndTime:             end,
		DocumentCount:       documentCount,
		RowsExtracted:       rowsExtracted,
		ReservationsUpdated: reservationsUpdated,
		UnresolvedRows:      unresolved,
	}
}
