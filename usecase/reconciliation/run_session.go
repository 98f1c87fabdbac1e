package reconciliation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"github.com/Yalishenda/Invoice-Handler/entity"
	"github.com/Yalishenda/Invoice-Handler/infra/db/model"
)

// RunSession executes one full reconciliation pass: fetch new documents,
// normalize their tables, filter against the payments ledger, match against
// the reservation snapshot, apply status transitions, and persist the audit
// trail. Per-item failures are logged and skipped; only collaborator-level
// failures (document list, ledger read, reservation snapshot) abort the run.
func (u *reconciliationUsecase) RunSession(ctx context.Context) (*model.SessionLog, error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[RunSession] Panic recovered: %v", r)
		}
	}()

	start := time.Now()
	log.Infof("[RunSession] Starting reconciliation session")

	seen, err := u.seenDocuments()
	if err != nil {
		log.Errorf("[RunSession] Could not read email log: %v", err)
		return nil, err
	}

	docs, err := u.source.FetchDocuments(ctx, u.senderFilter, u.maxDocuments, seen)
	if err != nil {
		log.Errorf("[RunSession] Could not fetch documents: %v", err)
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}
	if len(docs) == 0 {
		log.Infof("[RunSession] We are up to date, no new document found")
		return nil, nil
	}
	log.Infof("[RunSession] Fetched %d new documents", len(docs))

	rows := u.extractRows(ctx, docs)
	log.Infof("[RunSession] Normalized %d rows from %d documents", len(rows), len(docs))

	ledger, err := u.loadLedger()
	if err != nil {
		log.Errorf("[RunSession] Could not load payments ledger: %v", err)
		return nil, err
	}

	newRows, newEntries := FilterNew(rows, ledger)
	log.Infof("[RunSession] %d rows are new (%d duplicates dropped)", len(newRows), len(rows)-len(newRows))

	reservations, err := u.records.LoadReservations(ctx)
	if err != nil {
		log.Errorf("[RunSession] Could not load reservation snapshot: %v", err)
		return nil, fmt.Errorf("failed to load reservation snapshot: %w", err)
	}
	log.Infof("[RunSession] Reservation snapshot holds %d records", len(reservations))

	toUpdate, unresolved := Reconcile(newRows, reservations)

	// An aborted run must apply neither status transitions nor ledger entries.
	if err := ctx.Err(); err != nil {
		log.Warnf("[RunSession] Run cancelled before write-back, nothing applied: %v", err)
		return nil, err
	}

	applied := u.applyStatusChanges(ctx, toUpdate)

	for _, row := range unresolved {
		log.Warnf("[RunSession] Invoice %s (%s) has no reservation counterpart", row.InvoiceNum, row.SourceDocument)
	}

	u.persistDocumentLog(docs)
	u.persistLedgerEntries(newEntries)
	u.persistStatusChanges(applied)

	report := Summarize(start, time.Now(), len(docs), len(newRows), len(applied), unresolved)
	sessionLog, err := u.persistSessionReport(report)
	if err != nil {
		log.Errorf("[RunSession] Failed to persist session report: %v", err)
		return nil, err
	}

	log.Infof("[RunSession] Session done: %d documents, %d new rows, %d reservations updated, %d unresolved",
		report.DocumentCount, report.RowsExtracted, report.ReservationsUpdated, len(report.UnresolvedRows))
	return sessionLog, nil
}

func (u *reconciliationUsecase) extractRows(ctx context.Context, docs []entity.Document) []entity.InvoiceRow {
	var rows []entity.InvoiceRow
	for _, doc := range docs {
		tables, err := u.extractor.ExtractTables(ctx, doc)
		if err != nil {
			log.Errorf("[RunSession] %v for %s: %v", ErrExtractionFailure, doc.Name, err)
			continue
		}

		docRows, err := NormalizeTables(doc.Name, tables)
		if err != nil {
			log.Errorf("[RunSession] Skipping %s: %v", doc.Name, err)
			continue
		}
		rows = append(rows, docRows...)
	}
	return rows
}

func (u *reconciliationUsecase) seenDocuments() (map[string]bool, error) {
	emailLogs, err := u.dao.GetEmailLogs()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(emailLogs))
	for _, entry := range emailLogs {
		seen[entry.FileName] = true
	}
	return seen, nil
}

func (u *reconciliationUsecase) loadLedger() (map[PaymentKey]bool, error) {
	paymentLogs, err := u.dao.GetPaymentLogs()
	if err != nil {
		return nil, err
	}

	ledger := make(map[PaymentKey]bool, len(paymentLogs))
	for _, entry := range paymentLogs {
		amount, err := decimal.NewFromString(entry.TotalWithVAT)
		if err != nil {
			log.Warnf("[RunSession] Ledger entry %d has malformed amount %q, ignoring", entry.ID, entry.TotalWithVAT)
			continue
		}
		ledger[PaymentKey{InvoiceNum: entry.InvoiceNum, Amount: canonicalAmount(amount)}] = true
	}
	return ledger, nil
}

// applyStatusChanges pushes each transition to the record store. A failed
// update is logged and the reservation stays pending; the rest continue.
func (u *reconciliationUsecase) applyStatusChanges(ctx context.Context, changes []StatusChange) []StatusChange {
	applied := make([]StatusChange, 0, len(changes))
	for _, change := range changes {
		if err := u.records.UpdateReservationStatus(ctx, change.Reservation, change.TargetStatus); err != nil {
			log.Errorf("[RunSession] %v for booking %s: %v", ErrUpdateFailure, change.Reservation.BookingNum, err)
			continue
		}
		log.Infof("[RunSession] Booking %s status updated to %q", change.Reservation.BookingNum, change.TargetStatus)
		applied = append(applied, change)
	}
	return applied
}

func (u *reconciliationUsecase) persistDocumentLog(docs []entity.Document) {
	now := time.Now().Unix()
	for _, doc := range docs {
		err := u.dao.CreateEmailLog(model.EmailLog{
			EmailDate:  doc.Date,
			FileName:   doc.Name,
			CreateTime: now,
		})
		if err != nil {
			log.Errorf("[RunSession] Failed to log document %s: %v", doc.Name, err)
		}
	}
}

func (u *reconciliationUsecase) persistLedgerEntries(entries []entity.LedgerEntry) {
	for _, entry := range entries {
		err := u.dao.CreatePaymentLog(model.PaymentLog{
			FileName:     entry.SourceDocument,
			InvoiceNum:   entry.InvoiceNum,
			TotalWithVAT: canonicalAmount(entry.TotalWithVAT),
			CreateTime:   entry.RecordedAt.Unix(),
		})
		if err != nil {
			log.Errorf("[RunSession] Failed to append ledger entry for invoice %s: %v", entry.InvoiceNum, err)
		}
	}
}

func (u *reconciliationUsecase) persistStatusChanges(applied []StatusChange) {
	now := time.Now().Unix()
	for _, change := range applied {
		res := change.Reservation
		invoiceNum := ""
		if res.InvoiceNum != nil {
			invoiceNum = *res.InvoiceNum
		}
		err := u.dao.CreateStatusUpdateLog(model.StatusUpdateLog{
			BookingNum:     res.BookingNum,
			InvoiceNum:     invoiceNum,
			PreviousStatus: res.Status,
			CurrentStatus:  change.TargetStatus,
			PageURL:        res.URL,
			CreateTime:     now,
		})
		if err != nil {
			log.Errorf("[RunSession] Failed to log status update for booking %s: %v", res.BookingNum, err)
		}
	}
}

func (u *reconciliationUsecase) persistSessionReport(report entity.SessionReport) (*model.SessionLog, error) {
	absent, err := json.Marshal(report.UnresolvedRows)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize unresolved rows: %w", err)
	}

	sessionLog := &model.SessionLog{
		StartTime:      report.StartTime.Format(time.RFC3339),
		EndTime:        report.EndTime.Format(time.RFC3339),
		PdfCount:       int64(report.DocumentCount),
		RowsExtracted:  int64(report.RowsExtracted),
		PagesUpdated:   int64(report.ReservationsUpdated),
		AbsentInvoices: string(absent),
		CreateTime:     time.Now().Unix(),
	}
	if err := u.dao.CreateSessionLog(sessionLog); err != nil {
		return nil, err
	}
	return sessionLog, nil
}
