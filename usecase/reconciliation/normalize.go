package reconciliation

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/bidi"

	"github.com/Yalishenda/Invoice-Handler/consts"
	"github.com/Yalishenda/Invoice-Handler/entity"
)

var dateLayouts = []string{"02/01/2006", "02.01.2006", "2006-01-02"}

// NormalizeTables converts the raw tables extracted from one document into
// canonical invoice rows. The first row of the primary table is a header and
// is dropped; continuation tables carry no header and are appended verbatim,
// in order. Cells are positionally mapped onto
// (for_payment, details, invoice_amount_w_vat, date, invoice_num, reference).
// A row with an unexpected column count fails the whole document with
// ErrSchemaMismatch; the caller skips the document and keeps going.
func NormalizeTables(doc string, tables []entity.RawTable) ([]entity.InvoiceRow, error) {
	if len(tables) == 0 {
		return nil, nil
	}

	primary := tables[0]
	if len(primary) == 0 {
		return nil, nil
	}

	combined := make([][]string, 0, len(primary)-1)
	combined = append(combined, primary[1:]...)
	for _, continuation := range tables[1:] {
		combined = append(combined, continuation...)
	}

	rows := make([]entity.InvoiceRow, 0, len(combined))
	for i, raw := range combined {
		if len(raw) != consts.ExpectedColumnCount {
			return nil, fmt.Errorf("%w: %s row %d has %d columns, want %d",
				ErrSchemaMismatch, doc, i, len(raw), consts.ExpectedColumnCount)
		}

		amount, err := parseAmount(displayOrder(raw[2]))
		if err != nil {
			log.Warnf("[Normalize] Skipping row %d of %s: bad amount %q: %v", i, doc, raw[2], err)
			continue
		}

		rows = append(rows, entity.InvoiceRow{
			ForPayment:     displayOrder(raw[0]),
			Details:        displayOrder(raw[1]),
			AmountWithVAT:  amount,
			DocumentDate:   parseDate(displayOrder(raw[3])),
			InvoiceNum:     strings.TrimSpace(displayOrder(raw[4])),
			Reference:      displayOrder(raw[5]),
			SourceDocument: doc,
		})
	}

	return rows, nil
}

// displayOrder converts bidirectional cell text from logical (storage) order
// to visual order, so downstream comparisons see the text as printed on the
// document. Cells without right-to-left script pass through unchanged.
func displayOrder(s string) string {
	if !hasRTL(s) {
		return s
	}

	var p bidi.Paragraph
	if _, err := p.SetString(s); err != nil {
		return s
	}
	ordering, err := p.Order()
	if err != nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		text := run.String()
		if run.Direction() == bidi.RightToLeft {
			text = reverseRunes(text)
		}
		b.WriteString(text)
	}
	return b.String()
}

func hasRTL(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hebrew, unicode.Arabic) {
			return true
		}
	}
	return false
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// parseAmount reads a decimal-formatted amount cell, tolerating thousands
// separators and currency markers around the number.
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	neg := false
	if strings.HasPrefix(cleaned, "-") {
		neg = true
	}

	var b strings.Builder
	b.Grow(len(cleaned))
	for _, r := range cleaned {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return decimal.Decimal{}, fmt.Errorf("no digits in amount %q", s)
	}
	if neg {
		digits = "-" + digits
	}

	return decimal.NewFromString(digits)
}

func parseDate(s string) *time.Time {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}
