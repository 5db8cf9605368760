package appointment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/httperr"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	usecase "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/usecase/appointment"
)

// --- Mocks ---

type fakeRepo struct {
	shop     *models.Barbershop
	client   *models.Client
	pro      *models.Professional
	service  *models.Service
	conflict bool
}

var errNotFound = errors.New("not found")

func (f *fakeRepo) GetBarbershop(_ context.Context, id uint) (*models.Barbershop, error) {
	if f.shop == nil || f.shop.ID != id {
		return nil, errNotFound
	}
	return f.shop, nil
}

func (f *fakeRepo) GetClient(_ context.Context, barbershopID, clientID uint) (*models.Client, error) {
	if f.client == nil || f.client.BarbershopID != barbershopID || f.client.ID != clientID {
		return nil, errNotFound
	}
	return f.client, nil
}

func (f *fakeRepo) GetProfessional(_ context.Context, barbershopID, professionalID uint) (*models.Professional, error) {
	if f.pro == nil || f.pro.BarbershopID != barbershopID || f.pro.ID != professionalID {
		return nil, errNotFound
	}
	return f.pro, nil
}

func (f *fakeRepo) GetService(_ context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	if f.service == nil || f.service.BarbershopID != barbershopID || f.service.ID != serviceID {
		return nil, errNotFound
	}
	return f.service, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, _, _ uint) (*models.Appointment, error) {
	return nil, errNotFound
}

func (f *fakeRepo) HasTimeConflict(_ context.Context, _, _ uint, _, _, _ string) (bool, error) {
	return f.conflict, nil
}

func newFakeRepo() *fakeRepo {
	shop := &models.Barbershop{Name: "Navalha", Timezone: "America/Sao_Paulo", MinAdvanceMinutes: 120}
	shop.ID = 1

	client := &models.Client{BarbershopID: 1, Name: "Carla"}
	client.ID = 10

	pro := &models.Professional{
		BarbershopID: 1,
		Name:         "Pedro",
		WorkStart:    "08:00",
		WorkEnd:      "20:00",
		Active:       true,
	}
	pro.ID = 20

	service := &models.Service{
		BarbershopID: 1,
		Name:         "Corte",
		Price:        50,
		DurationMin:  30,
		Active:       true,
	}
	service.ID = 30

	return &fakeRepo{shop: shop, client: client, pro: pro, service: service}
}

// futureDate devolve uma data bem à frente do relógio real, para a
// antecedência mínima nunca interferir nos demais cenários.
func futureDate() string {
	return time.Now().AddDate(1, 0, 0).Format("2006-01-02")
}

func validInput(repo *fakeRepo) usecase.CreateAppointmentInput {
	return usecase.CreateAppointmentInput{
		BarbershopID:   repo.shop.ID,
		ClientID:       repo.client.ID,
		ProfessionalID: repo.pro.ID,
		ServiceID:      repo.service.ID,
		Date:           futureDate(),
		Time:           "10:00",
	}
}

// --- Tests ---

func TestCreate_Success(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewCreateAppointment(repo)

	ap, err := uc.Execute(context.Background(), validInput(repo))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if ap.Status != "pending" {
		t.Fatalf("status = %q, want pending", ap.Status)
	}
	if ap.StartTime != "10:00" || ap.EndTime != "10:30" {
		t.Fatalf("times = %q-%q, want 10:00-10:30", ap.StartTime, ap.EndTime)
	}
	if ap.Price != repo.service.Price {
		t.Fatalf("price = %v, want service price %v", ap.Price, repo.service.Price)
	}
	if ap.BarbershopID != repo.shop.ID {
		t.Fatalf("barbershop = %d, want %d", ap.BarbershopID, repo.shop.ID)
	}
}

func TestCreate_RejectsCrossTenantReferences(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewCreateAppointment(repo)

	// Mesmo ids válidos, mas a referência pertence a outra barbearia.
	repo.client.BarbershopID = 2

	_, err := uc.Execute(context.Background(), validInput(repo))
	if !httperr.IsBusiness(err, "client_not_found") {
		t.Fatalf("err = %v, want client_not_found", err)
	}
}

func TestCreate_RejectsTooSoon(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewCreateAppointment(repo)

	in := validInput(repo)
	in.Date = "2020-01-01"

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "too_soon") {
		t.Fatalf("err = %v, want too_soon", err)
	}
}

func TestCreate_RejectsInvalidDate(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewCreateAppointment(repo)

	in := validInput(repo)
	in.Date = "01/01/2030"

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "invalid_date_or_time") {
		t.Fatalf("err = %v, want invalid_date_or_time", err)
	}
}

func TestCreate_RejectsInactiveProfessional(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewCreateAppointment(repo)

	repo.pro.Active = false

	_, err := uc.Execute(context.Background(), validInput(repo))
	if !httperr.IsBusiness(err, "professional_inactive") {
		t.Fatalf("err = %v, want professional_inactive", err)
	}
}

func TestCreate_RejectsOutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewCreateAppointment(repo)

	in := validInput(repo)
	in.Time = "07:00"

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "outside_working_hours") {
		t.Fatalf("err = %v, want outside_working_hours", err)
	}
}

func TestCreate_RejectsOffDay(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewCreateAppointment(repo)

	in := validInput(repo)
	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}

	// Atende em todos os dias menos o do agendamento.
	for d := 0; d < 7; d++ {
		if d != int(day.Weekday()) {
			repo.pro.WorkDays = append(repo.pro.WorkDays, d)
		}
	}

	_, err = uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "outside_working_hours") {
		t.Fatalf("err = %v, want outside_working_hours", err)
	}
}

func TestCreate_RejectsTimeConflict(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewCreateAppointment(repo)

	repo.conflict = true

	_, err := uc.Execute(context.Background(), validInput(repo))
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("err = %v, want time_conflict", err)
	}
}
