package reconciliation

import (
	"context"

	"github.com/Yalishenda/Invoice-Handler/entity"
	"github.com/Yalishenda/Invoice-Handler/infra/db/dao"
	"github.com/Yalishenda/Invoice-Handler/infra/db/model"
	"github.com/Yalishenda/Invoice-Handler/infra/locker"
)

// DocumentSource supplies source documents from a sender-filtered mailbox,
// skipping filenames already present in seen.
type DocumentSource interface {
	FetchDocuments(ctx context.Context, sender string, max int, seen map[string]bool) ([]entity.Document, error)
}

// TableExtractor turns one document's bytes into its extracted tables
// (primary table first, continuation tables after).
type TableExtractor interface {
	ExtractTables(ctx context.Context, doc entity.Document) ([]entity.RawTable, error)
}

// RecordStore reads the reservation snapshot and applies per-reservation
// status transitions.
type RecordStore interface {
	LoadReservations(ctx context.Context) ([]entity.Reservation, error)
	UpdateReservationStatus(ctx context.Context, r entity.Reservation, status string) error
}

type ReconciliationUsecase interface {
	RunSession(ctx context.Context) (*model.SessionLog, error)
	GetSessionReports() ([]model.SessionLog, error)
	TryAcquireRun(ctx context.Context) bool
	UnlockRun(ctx context.Context)
}

type reconciliationUsecase struct {
	source       DocumentSource
	extractor    TableExtractor
	records      RecordStore
	dao          dao.DaoMethod
	locker       *locker.Locker
	senderFilter string
	maxDocuments int
}

func NewReconciliationUsecase(
	source DocumentSource,
	extractor TableExtractor,
	records RecordStore,
	d dao.DaoMethod,
	l *locker.Locker,
	senderFilter string,
	maxDocuments int,
) ReconciliationUsecase {
	return &reconciliationUsecase{
		source:       source,
		extractor:    extractor,
		records:      records,
		dao:          d,
		locker:       l,
		senderFilter: senderFilter,
		maxDocuments: maxDocuments,
	}
}
