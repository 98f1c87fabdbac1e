package reconciliation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Yalishenda/Invoice-Handler/entity"
)

func TestNormalizeTables_DropsHeaderAndAppendsContinuation(t *testing.T) {
	tables := []entity.RawTable{
		{
			{"for_payment", "details", "invoice_amount_w_vat", "date", "invoice_num", "reference"},
			{"supplier a", "order 1", "100.00", "15/01/2024", "INV1", "ref-1"},
			{"supplier b", "order 2", "250.50", "16/01/2024", "INV2", "ref-2"},
		},
		{
			{"supplier c", "order 3", "75.00", "17/01/2024", "INV3", "ref-3"},
		},
	}

	rows, err := NormalizeTables("doc.pdf", tables)
	if err != nil {
		t.Fatalf("NormalizeTables error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	expectedNums := []string{"INV1", "INV2", "INV3"}
	for i, num := range expectedNums {
		if rows[i].InvoiceNum != num {
			t.Fatalf("row %d: expected invoice num %s, got %s", i, num, rows[i].InvoiceNum)
		}
		if rows[i].SourceDocument != "doc.pdf" {
			t.Fatalf("row %d: expected source doc.pdf, got %s", i, rows[i].SourceDocument)
		}
	}
	if !rows[1].AmountWithVAT.Equal(decimal.RequireFromString("250.5")) {
		t.Fatalf("expected amount 250.5, got %s", rows[1].AmountWithVAT)
	}
	if rows[0].DocumentDate == nil {
		t.Fatal("expected document date to be parsed")
	}
}

func TestNormalizeTables_SchemaMismatch(t *testing.T) {
	tables := []entity.RawTable{
		{
			{"h1", "h2", "h3", "h4", "h5", "h6", "h7"},
			{"a", "b", "100", "15/01/2024", "INV1", "ref", "extra"},
		},
	}

	rows, err := NormalizeTables("bad.pdf", tables)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected zero rows from mismatched table, got %d", len(rows))
	}
}

func TestNormalizeTables_EmptyInput(t *testing.T) {
	for _, tables := range [][]entity.RawTable{nil, {}, {{}}} {
		rows, err := NormalizeTables("empty.pdf", tables)
		if err != nil {
			t.Fatalf("NormalizeTables error: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("expected no rows, got %d", len(rows))
		}
	}
}

func TestNormalizeTables_SkipsRowWithBadAmount(t *testing.T) {
	tables := []entity.RawTable{
		{
			{"h1", "h2", "h3", "h4", "h5", "h6"},
			{"a", "b", "not-a-number", "15/01/2024", "INV1", "ref"},
			{"c", "d", "50.00", "16/01/2024", "INV2", "ref"},
		},
	}

	rows, err := NormalizeTables("doc.pdf", tables)
	if err != nil {
		t.Fatalf("NormalizeTables error: %v", err)
	}
	if len(rows) != 1 || rows[0].InvoiceNum != "INV2" {
		t.Fatalf("expected only INV2 to survive, got %+v", rows)
	}
}

func TestDisplayOrder(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		expected string
	}{
		{"numeric passthrough", "1,234.50", "1,234.50"},
		{"latin passthrough", "Invoice 42", "Invoice 42"},
		{"hebrew reversed", "שלום", "םולש"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := displayOrder(tc.in); got != tc.expected {
				t.Fatalf("displayOrder(%q) = %q, want %q", tc.in, got, tc.expected)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{"100", "100", false},
		{"1,234.50", "1234.5", false},
		{"NIS 250.00", "250", false},
		{"-75.25", "-75.25", false},
		{"", "", true},
		{"n/a", "", true},
	}
	for _, tc := range cases {
		got, err := parseAmount(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseAmount(%q) expected error, got %s", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseAmount(%q) error: %v", tc.in, err)
		}
		if !got.Equal(decimal.RequireFromString(tc.expected)) {
			t.Fatalf("parseAmount(%q) = %s, want %s", tc.in, got, tc.expected)
		}
	}
}

func TestParseDate(t *testing.T) {
	if d := parseDate("15/01/2024"); d == nil || d.Day() != 15 || int(d.Month()) != 1 {
		t.Fatalf("expected 15 Jan 2024, got %v", d)
	}
	if d := parseDate("2024-01-15"); d == nil {
		t.Fatal("expected ISO date to parse")
	}
	if d := parseDate("garbage"); d != nil {
		t.Fatalf("expected nil for unparseable date, got %v", d)
	}
}
