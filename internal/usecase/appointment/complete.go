package appointment

import (
	"context"

	domain "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/domain/appointment"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/timezone"
)

type CompleteAppointment struct {
	repo domain.Repository
}

func NewCompleteAppointment(repo domain.Repository) *CompleteAppointment {
	return &CompleteAppointment{repo: repo}
}

func (uc *CompleteAppointment) Execute(
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

	return domain.Complete(domain.Status(ap.Status), timezone.NowIn(shop.Timezone))
}
