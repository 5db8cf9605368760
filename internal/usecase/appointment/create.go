package appointment

import (
	"context"
	"time"

	domain "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/domain/appointment"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httperr"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint

	ClientID       uint
	ProfessionalID uint
	ServiceID      uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment valida todas as referências no tenant do
// agendamento e devolve a linha montada (ainda não persistida);
// a persistência passa pelo store do tenant para manter o eco.
type CreateAppointment struct {
	repo domain.Repository
}

func NewCreateAppointment(repo domain.Repository) *CreateAppointment {
	return &CreateAppointment{repo: repo}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Barbearia
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershop(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Data / hora no timezone da barbearia
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3. Antecedência mínima
	// --------------------------------------------------
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Referências no mesmo tenant
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, in.BarbershopID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	pro, err := uc.repo.GetProfessional(ctx, in.BarbershopID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	if !pro.Active {
		return nil, httperr.ErrBusiness("professional_inactive")
	}

	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !service.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)
	startStr := start.Format("15:04")
	endStr := end.Format("15:04")

	// --------------------------------------------------
	// 5. Expediente do profissional
	// --------------------------------------------------
	if !worksOn(pro, int(start.Weekday())) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}
	if pro.WorkStart != "" && startStr < pro.WorkStart {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}
	if pro.WorkEnd != "" && endStr > pro.WorkEnd {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 6. Conflito de horário
	// --------------------------------------------------
	conflict, err := uc.repo.HasTimeConflict(
		ctx,
		in.BarbershopID,
		in.ProfessionalID,
		in.Date,
		startStr,
		endStr,
	)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, httperr.ErrBusiness("time_conflict")
	}

	// --------------------------------------------------
	// 7. Montagem (status centralizado no domínio)
	// --------------------------------------------------
	return &models.Appointment{
		BarbershopID:   in.BarbershopID,
		ClientID:       client.ID,
		ProfessionalID: pro.ID,
		ServiceID:      service.ID,
		Date:           in.Date,
		StartTime:      startStr,
		EndTime:        endStr,
		Status:         string(domain.InitialStatus()),
		Price:          service.Price,
		Notes:          in.Notes,
	}, nil
}

// worksOn: lista vazia significa todos os dias.
func worksOn(pro *models.Professional, weekday int) bool {
	if len(pro.WorkDays) == 0 {
		return true
	}
	for _, d := range pro.WorkDays {
		if d == weekday {
			return true
		}
	}
	return false
}
