package dao

import (
	"fmt"

	"github.com/Yalishenda/Invoice-Handler/infra/db/model"
)

func (d *dao) CreateStatusUpdateLog(payload model.StatusUpdateLog) error {
	if err := d.db.Create(&payload).Error; err != nil {
		return fmt.Errorf("failed to append status update log: %w", err)
	}
	return nil
}
