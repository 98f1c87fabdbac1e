package reconciliation

import (
	"github.com/Yalishenda/Invoice-Handler/infra/db/model"
)

func (u *reconciliationUsecase) GetSessionReports() ([]model.SessionLog, error) {
	return u.dao.GetSessionLogs()
}
