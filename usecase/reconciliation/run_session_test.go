package reconciliation

import (
	"context"
	"errors"
	"testing"

	"github.com/Yalishenda/Invoice-Handler/consts"
	"github.com/Yalishenda/Invoice-Handler/entity"
	"github.com/Yalishenda/Invoice-Handler/infra/db/model"
	"github.com/Yalishenda/Invoice-Handler/infra/locker"
)

type fakeSource struct {
	docs []entity.Document
	err  error
}

func (f *fakeSource) FetchDocuments(ctx context.Context, sender string, max int, seen map[string]bool) ([]entity.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Document
	for _, d := range f.docs {
		if !seen[d.Name] {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeExtractor struct {
	tables map[string][]entity.RawTable
	errs   map[string]error
}

func (f *fakeExtractor) ExtractTables(ctx context.Context, doc entity.Document) ([]entity.RawTable, error) {
	if err := f.errs[doc.Name]; err != nil {
		return nil, err
	}
	return f.tables[doc.Name], nil
}

type fakeRecords struct {
	reservations []entity.Reservation
	failIDs      map[string]bool
	updated      []string
}

func (f *fakeRecords) LoadReservations(ctx context.Context) ([]entity.Reservation, error) {
	return f.reservations, nil
}

func (f *fakeRecords) UpdateReservationStatus(ctx context.Context, r entity.Reservation, status string) error {
	if f.failIDs[r.ID] {
		return errors.New("record store returned 500")
	}
	f.updated = append(f.updated, r.ID)
	return nil
}

type fakeDao struct {
	payments      []model.PaymentLog
	emails        []model.EmailLog
	statusUpdates []model.StatusUpdateLog
	sessions      []model.SessionLog
}

func (f *fakeDao) GetPaymentLogs() ([]model.PaymentLog, error) { return f.payments, nil }
func (f *fakeDao) CreatePaymentLog(p model.PaymentLog) error {
	f.payments = append(f.payments, p)
	return nil
}
func (f *fakeDao) GetEmailLogs() ([]model.EmailLog, error) { return f.emails, nil }
func (f *fakeDao) CreateEmailLog(p model.EmailLog) error {
	f.emails = append(f.emails, p)
	return nil
}
func (f *fakeDao) CreateStatusUpdateLog(p model.StatusUpdateLog) error {
	f.statusUpdates = append(f.statusUpdates, p)
	return nil
}
func (f *fakeDao) GetSessionLogs() ([]model.SessionLog, error) { return f.sessions, nil }
func (f *fakeDao) CreateSessionLog(p *model.SessionLog) error {
	f.sessions = append(f.sessions, *p)
	return nil
}

func invoiceTable(rows ...[]string) []entity.RawTable {
	table := entity.RawTable{
		{"for_payment", "details", "invoice_amount_w_vat", "date", "invoice_num", "reference"},
	}
	for _, r := range rows {
		table = append(table, r)
	}
	return []entity.RawTable{table}
}

func newTestUsecase(source DocumentSource, ext TableExtractor, rec RecordStore, d *fakeDao) ReconciliationUsecase {
	return NewReconciliationUsecase(source, ext, rec, d, locker.New(), "billing@example.com", consts.DefaultMaxDocuments)
}

func TestRunSession_FullPass(t *testing.T) {
	source := &fakeSource{docs: []entity.Document{{Name: "a.pdf", Date: "Mon, 1 Jan 2024"}}}
	ext := &fakeExtractor{tables: map[string][]entity.RawTable{
		"a.pdf": invoiceTable(
			[]string{"supplier", "order", "100.00", "15/01/2024", "INV1", "ref"},
			[]string{"supplier", "order", "50.00", "16/01/2024", "INV9", "ref"},
		),
	}}
	rec := &fakeRecords{reservations: []entity.Reservation{reservation("p1", "INV1", consts.StatusPending)}}
	d := &fakeDao{}

	report, err := newTestUsecase(source, ext, rec, d).RunSession(context.Background())
	if err != nil {
		t.Fatalf("RunSession error: %v", err)
	}
	if report == nil {
		t.Fatal("expected a session report")
	}

	if report.PdfCount != 1 || report.RowsExtracted != 2 || report.PagesUpdated != 1 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if len(rec.updated) != 1 || rec.updated[0] != "p1" {
		t.Fatalf("expected p1 updated, got %v", rec.updated)
	}
	if len(d.payments) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(d.payments))
	}
	if len(d.emails) != 1 || d.emails[0].FileName != "a.pdf" {
		t.Fatalf("expected a.pdf in the email log, got %+v", d.emails)
	}
	if len(d.statusUpdates) != 1 || d.statusUpdates[0].CurrentStatus != consts.StatusPaid {
		t.Fatalf("expected one status update to paid, got %+v", d.statusUpdates)
	}
	if len(d.sessions) != 1 {
		t.Fatalf("expected one session log, got %d", len(d.sessions))
	}
}

func TestRunSession_NoNewDocuments(t *testing.T) {
	source := &fakeSource{docs: []entity.Document{{Name: "a.pdf"}}}
	d := &fakeDao{emails: []model.EmailLog{{FileName: "a.pdf"}}}

	report, err := newTestUsecase(source, &fakeExtractor{}, &fakeRecords{}, d).RunSession(context.Background())
	if err != nil {
		t.Fatalf("RunSession error: %v", err)
	}
	if report != nil {
		t.Fatalf("expected no session when up to date, got %+v", report)
	}
	if len(d.sessions) != 0 {
		t.Fatal("nothing should be persisted when there is nothing to do")
	}
}

func TestRunSession_ExtractionFailureSkipsDocument(t *testing.T) {
	source := &fakeSource{docs: []entity.Document{{Name: "bad.pdf"}, {Name: "good.pdf"}}}
	ext := &fakeExtractor{
		tables: map[string][]entity.RawTable{
			"good.pdf": invoiceTable([]string{"s", "o", "10.00", "15/01/2024", "INV1", "r"}),
		},
		errs: map[string]error{"bad.pdf": errors.New("malformed source")},
	}
	rec := &fakeRecords{reservations: []entity.Reservation{reservation("p1", "INV1", consts.StatusPending)}}
	d := &fakeDao{}

	report, err := newTestUsecase(source, ext, rec, d).RunSession(context.Background())
	if err != nil {
		t.Fatalf("one bad document must not abort the run: %v", err)
	}
	if report.RowsExtracted != 1 || report.PagesUpdated != 1 {
		t.Fatalf("expected the good document to be processed, got %+v", report)
	}
}

func TestRunSession_UpdateFailureKeepsGoing(t *testing.T) {
	source := &fakeSource{docs: []entity.Document{{Name: "a.pdf"}}}
	ext := &fakeExtractor{tables: map[string][]entity.RawTable{
		"a.pdf": invoiceTable(
			[]string{"s", "o", "10.00", "15/01/2024", "INV1", "r"},
			[]string{"s", "o", "20.00", "16/01/2024", "INV2", "r"},
		),
	}}
	rec := &fakeRecords{
		reservations: []entity.Reservation{
			reservation("p1", "INV1", consts.StatusPending),
			reservation("p2", "INV2", consts.StatusPending),
		},
		failIDs: map[string]bool{"p1": true},
	}
	d := &fakeDao{}

	report, err := newTestUsecase(source, ext, rec, d).RunSession(context.Background())
	if err != nil {
		t.Fatalf("RunSession error: %v", err)
	}
	if report.PagesUpdated != 1 {
		t.Fatalf("failed update must not count, got %d", report.PagesUpdated)
	}
	if len(rec.updated) != 1 || rec.updated[0] != "p2" {
		t.Fatalf("expected only p2 applied, got %v", rec.updated)
	}
	if len(d.statusUpdates) != 1 || d.statusUpdates[0].BookingNum != "booking-p2" {
		t.Fatalf("only applied transitions belong in the audit log, got %+v", d.statusUpdates)
	}
}

func TestRunSession_LedgerDedupAcrossRuns(t *testing.T) {
	source := &fakeSource{docs: []entity.Document{{Name: "a.pdf"}}}
	ext := &fakeExtractor{tables: map[string][]entity.RawTable{
		"a.pdf": invoiceTable([]string{"s", "o", "100.00", "15/01/2024", "INV1", "r"}),
	}}
	rec := &fakeRecords{reservations: []entity.Reservation{reservation("p1", "INV1", consts.StatusPending)}}
	d := &fakeDao{payments: []model.PaymentLog{{InvoiceNum: "INV1", TotalWithVAT: "100"}}}

	report, err := newTestUsecase(source, ext, rec, d).RunSession(context.Background())
	if err != nil {
		t.Fatalf("RunSession error: %v", err)
	}
	if report.RowsExtracted != 0 {
		t.Fatalf("ledger pair must be filtered out, got %d new rows", report.RowsExtracted)
	}
	if len(rec.updated) != 0 {
		t.Fatalf("no update may be attempted for a known pair, got %v", rec.updated)
	}
	if len(d.payments) != 1 {
		t.Fatalf("no ledger entry may be re-emitted, got %d", len(d.payments))
	}
}

func TestRunSession_CancelledRunPersistsNothing(t *testing.T) {
	source := &fakeSource{docs: []entity.Document{{Name: "a.pdf"}}}
	ext := &fakeExtractor{tables: map[string][]entity.RawTable{
		"a.pdf": invoiceTable([]string{"s", "o", "100.00", "15/01/2024", "INV1", "r"}),
	}}
	rec := &fakeRecords{reservations: []entity.Reservation{reservation("p1", "INV1", consts.StatusPending)}}
	d := &fakeDao{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestUsecase(source, ext, rec, d).RunSession(ctx)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if len(rec.updated) != 0 {
		t.Fatal("cancelled run must not apply status transitions")
	}
	if len(d.payments) != 0 || len(d.emails) != 0 || len(d.statusUpdates) != 0 || len(d.sessions) != 0 {
		t.Fatal("cancelled run must not persist partial results")
	}
}

func TestRunSession_FetchFailureIsFatal(t *testing.T) {
	source := &fakeSource{err: errors.New("mailbox unreachable")}

	_, err := newTestUsecase(source, &fakeExtractor{}, &fakeRecords{}, &fakeDao{}).RunSession(context.Background())
	if err == nil {
		t.Fatal("expected a fatal error when the document list cannot be obtained")
	}
}
