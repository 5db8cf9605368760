package appointment

import (
	"context"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
)

type Repository interface {
	// -------- Barbershop --------
	GetBarbershop(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// -------- Referências (sempre no tenant do agendamento) --------
	GetClient(
		ctx context.Context,
		barbershopID uint,
		clientID uint,
	) (*models.Client, error)

	GetProfessional(
		ctx context.Context,
		barbershopID uint,
		professionalID uint,
	) (*models.Professional, error)

	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		barbershopID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// HasTimeConflict verifica sobreposição com outros agendamentos
	// não cancelados do mesmo profissional no mesmo dia.
	HasTimeConflict(
		ctx context.Context,
		barbershopID uint,
		professionalID uint,
		date string,
		startTime string,
		endTime string,
	) (bool, error)
}
