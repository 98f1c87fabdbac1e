package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is one fetched source document, keyed by a stable filename.
type Document struct {
	Name    string
	Date    string
	Content []byte
}

// RawTable is one extracted table: an ordered sequence of rows of cell text.
type RawTable [][]string

// InvoiceRow is one line item extracted from a document. Rows are built once
// by the normalizer and never mutated afterwards.
type InvoiceRow struct {
	ForPayment     string          `json:"for_payment"`
	Details        string          `json:"details"`
	AmountWithVAT  decimal.Decimal `json:"invoice_amount_w_vat"`
	DocumentDate   *time.Time      `json:"date,omitempty"`
	InvoiceNum     string          `json:"invoice_num"`
	Reference      string          `json:"reference"`
	SourceDocument string          `json:"source_document"`
}

// LedgerEntry records an invoice row accepted as new, so later runs can skip it.
type LedgerEntry struct {
	SourceDocument string          `json:"file_name"`
	InvoiceNum     string          `json:"invoice_num"`
	TotalWithVAT   decimal.Decimal `json:"total_with_vat"`
	RecordedAt     time.Time       `json:"timestamp"`
}
