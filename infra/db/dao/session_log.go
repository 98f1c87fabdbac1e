package dao

import (
	"fmt"

	"github.com/Yalishenda/Invoice-Handler/infra/db/model"
)

func (d *dao) GetSessionLogs() ([]model.SessionLog, error) {
	var logs []model.SessionLog
	if err := d.db.Order("id ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to read session logs: %w", err)
	}
	return logs, nil
}

func (d *dao) CreateSessionLog(payload *model.SessionLog) error {
	if err := d.db.Create(payload).Error; err != nil {
		return fmt.Errorf("failed to append session log: %w", err)
	}
	return nil
}
