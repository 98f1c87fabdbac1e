package dao

import (
	"github.com/Yalishenda/Invoice-Handler/infra/db/model"

	"github.com/jinzhu/gorm"
)

// DaoMethod covers the four append-only logs: payments (the dedup ledger),
// emails (documents seen), and the status_updates/sessions audit trails.
type DaoMethod interface {
	GetPaymentLogs() ([]model.PaymentLog, error)
	CreatePaymentLog(payload model.PaymentLog) error
	GetEmailLogs() ([]model.EmailLog, error)
	CreateEmailLog(payload model.EmailLog) error
	CreateStatusUpdateLog(payload model.StatusUpdateLog) error
	GetSessionLogs() ([]model.SessionLog, error)
	CreateSessionLog(payload *model.SessionLog) error
}

type dao struct {
	db *gorm.DB
}

func NewDaoMethod(db *gorm.DB) DaoMethod {
	return &dao{db: db}
}
