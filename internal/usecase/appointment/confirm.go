package appointment

import (
	"context"

	domain "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/domain/appointment"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
)

type ConfirmAppointment struct {
	repo domain.Repository
}

func NewConfirmAppointment(repo domain.Repository) *ConfirmAppointment {
	return &ConfirmAppointment{repo: repo}
}

// Execute valida a transição e devolve os campos do update; o
// handler aplica via store do tenant (eco autoritativo).
func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (store.Fields, error) {

	ap, err := uc.repo.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return nil, err
	}

	return domain.Confirm(domain.Status(ap.Status))
}
