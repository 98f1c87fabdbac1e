package reconciliation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Yalishenda/Invoice-Handler/entity"
)

// PaymentKey is the dedup identity of an invoice row: its invoice number and
// its amount in canonical decimal form.
type PaymentKey struct {
	InvoiceNum string
	Amount     string
}

func KeyOf(row entity.InvoiceRow) PaymentKey {
	return PaymentKey{
		InvoiceNum: row.InvoiceNum,
		Amount:     canonicalAmount(row.AmountWithVAT),
	}
}

// canonicalAmount renders a decimal so that "100" and "100.00" collapse to
// the same key. Amount equality is exact; only the textual form is unified.
func canonicalAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// FilterNew keeps only rows whose (invoice_num, amount) pair is absent from
// the ledger. The ledger is consulted incrementally, so a pair repeated
// within the same batch is new once and a duplicate afterwards. Exactly one
// LedgerEntry is produced per kept row, in matching order.
func FilterNew(rows []entity.InvoiceRow, ledger map[PaymentKey]bool) ([]entity.InvoiceRow, []entity.LedgerEntry) {
	seen := make(map[PaymentKey]bool, len(ledger)+len(rows))
	for k := range ledger {
		seen[k] = true
	}

	var newRows []entity.InvoiceRow
	var entries []entity.LedgerEntry
	for _, row := range rows {
		key := KeyOf(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		newRows = append(newRows, row)
		entries = append(entries, entity.LedgerEntry{
			SourceDocument: row.SourceDocument,
			InvoiceNum:     row.InvoiceNum,
			TotalWithVAT:   row.AmountWithVAT,
			RecordedAt:     time.Now(),
		})
	}

	return newRows, entries
}
