package controllers

import (
	"github.com/Yalishenda/Invoice-Handler/handler"

	"github.com/gorilla/mux"
)

func RegisterReconciliationRoutes(router *mux.Router, h *handler.ReconciliationHandler) {
	router.HandleFunc("/run_reconciliation", h.RunReconciliation).Methods("POST")
	router.HandleFunc("/get_sessions", h.GetSessions).Methods("GET")
}
