package handler

import (
	"context"
	"errors"
)

// ErrRunInProgress is returned when another reconciliation run holds the slot.
var ErrRunInProgress = errors.New("a reconciliation run is already in progress")

func (h *ReconciliationHandler) ReconciliationExecution(ctx context.Context) error {
	if !h.Usecase.TryAcquireRun(ctx) {
		return ErrRunInProgress
	}
	defer h.Usecase.UnlockRun(ctx)

	_, err := h.Usecase.RunSession(ctx)
	return err
}
