package appointment

import (
	"time"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
)

// ===============================
// Domain Actions
// ===============================

// Cada ação valida a transição e devolve os campos parciais que o
// store aplica via backend (o eco do servidor atualiza a coleção).

func Confirm(current Status) (store.Fields, error) {
	if err := CanConfirm(current); err != nil {
		return nil, err
	}
	return store.Fields{"status": string(StatusConfirmed)}, nil
}

func Complete(current Status, now time.Time) (store.Fields, error) {
	if err := CanComplete(current); err != nil {
		return nil, err
	}
	return store.Fields{
		"status":       string(StatusCompleted),
		"completed_at": now,
	}, nil
}

func Cancel(current Status, now time.Time) (store.Fields, error) {
	if err := CanCancel(current); err != nil {
		return nil, err
	}
	return store.Fields{
		"status":       string(StatusCancelled),
		"cancelled_at": now,
	}, nil
}
