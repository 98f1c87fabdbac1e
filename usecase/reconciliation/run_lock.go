package reconciliation

import (
	"context"

	"github.com/labstack/gommon/log"
)

// TryAcquireRun claims the single run slot. Runs race on the shared ledger,
// so overlapping invocations are rejected rather than serialized.
func (u *reconciliationUsecase) TryAcquireRun(ctx context.Context) bool {
	if !u.locker.TryAcquire() {
		log.Warnf("[RunLock] A reconciliation run is already in progress")
		return false
	}
	log.Infof("[RunLock] Run slot acquired")
	return true
}

func (u *reconciliationUsecase) UnlockRun(ctx context.Context) {
	u.locker.Release()
	log.Infof("[RunLock] Run slot released")
}
