package reconciliation

import (
	"github.com/Yalishenda/Invoice-Handler/consts"
	"github.com/Yalishenda/Invoice-Handler/entity"
)

// StatusChange pairs a matched reservation with the status it should move to.
type StatusChange struct {
	Reservation  entity.Reservation
	TargetStatus string
}

// Reconcile partitions new invoice rows against the reservation snapshot.
// Matching is exact string equality on invoice_num, first reservation in
// snapshot order wins. Each row lands in exactly one bucket:
//   - no matching reservation (or no invoice number) -> unresolved,
//   - matched and already paid (or already queued this pass) -> dropped,
//   - matched and not yet paid -> its reservation joins the update set once.
// The input is never mutated; unresolved preserves input order.
func Reconcile(newRows []entity.InvoiceRow, reservations []entity.Reservation) ([]StatusChange, []entity.InvoiceRow) {
	queued := make(map[string]bool)

	var toUpdate []StatusChange
	var unresolved []entity.InvoiceRow
	for _, row := range newRows {
		if row.InvoiceNum == "" {
			unresolved = append(unresolved, row)
			continue
		}

		res, found := findByInvoiceNum(reservations, row.InvoiceNum)
		if !found {
			unresolved = append(unresolved, row)
			continue
		}

		if res.Status == consts.StatusPaid || queued[res.ID] {
			continue
		}

		queued[res.ID] = true
		toUpdate = append(toUpdate, StatusChange{
			Reservation:  res,
			TargetStatus: consts.StatusPaid,
		})
	}

	return toUpdate, unresolved
}

func findByInvoiceNum(reservations []entity.Reservation, invoiceNum string) (entity.Reservation, bool) {
	for _, res := range reservations {
		if res.InvoiceNum != nil && *res.InvoiceNum == invoiceNum {
			return res, true
		}
	}
	return entity.Reservation{}, false
}
