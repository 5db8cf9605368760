package appointment

import (
	"context"

	domain "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/domain/appointment"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/timezone"
)

type CancelAppointment struct {
	repo domain.Repository
}

func NewCancelAppointment(repo domain.Repository) *CancelAppointment {
	return &CancelAppointment{repo: repo}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (store.Fields, error) {

	ap, err := uc.repo.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetBarbershop(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	return domain.Cancel(domain.Status(ap.Status), timezone.NowIn(shop.Timezone))
}
