package dao

import (
	"fmt"

	"github.com/Yalishenda/Invoice-Handler/infra/db/model"
)

func (d *dao) GetEmailLogs() ([]model.EmailLog, error) {
	var logs []model.EmailLog
	if err := d.db.Order("id ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to read email log: %w", err)
	}
	return logs, nil
}

func (d *dao) CreateEmailLog(payload model.EmailLog) error {
	if err := d.db.Create(&payload).Error; err != nil {
		return fmt.Errorf("failed to append email log: %w", err)
	}
	return nil
}
