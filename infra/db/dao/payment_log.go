package dao

import (
	"fmt"

	"github.com/Yalishenda/Invoice-Handler/infra/db/model"
)

func (d *dao) GetPaymentLogs() ([]model.PaymentLog, error) {
	var logs []model.PaymentLog
	if err := d.db.Order("id ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to read payment ledger: %w", err)
	}
	return logs, nil
}

func (d *dao) CreatePaymentLog(payload model.PaymentLog) error {
	if err := d.db.Create(&payload).Error; err != nil {
		return fmt.Errorf("failed to append payment log: %w", err)
	}
	return nil
}
