package resources

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	infraRepo "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/infra/repository"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
)

// Set agrupa os seis stores de recursos de uma barbearia. Todos
// compartilham o mesmo motor genérico; a diferença entre eles é só
// a ordenação declarada aqui.
type Set struct {
	Clients       *store.Store[*models.Client]
	Professionals *store.Store[*models.Professional]
	Services      *store.Store[*models.Service]
	Products      *store.Store[*models.Product]
	Appointments  *store.Store[*models.Appointment]
	Transactions  *store.Store[*models.Transaction]
}

// Ordenação "mais recente primeiro" com desempate por id, estável
// para linhas criadas no mesmo instante.
func newerFirst(at time.Time, aid uint, bt time.Time, bid uint) bool {
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return aid > bid
}

const creationDesc = "created_at DESC, id DESC"

func NewSet(db *gorm.DB) *Set {
	return &Set{
		Clients: store.New(
			infraRepo.NewGormBackend(db, func() *models.Client { return &models.Client{} }, creationDesc),
			func(a, b *models.Client) bool {
				return newerFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
			},
		),
		Professionals: store.New(
			infraRepo.NewGormBackend(db, func() *models.Professional { return &models.Professional{} }, creationDesc),
			func(a, b *models.Professional) bool {
				return newerFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
			},
		),
		Services: store.New(
			infraRepo.NewGormBackend(db, func() *models.Service { return &models.Service{} }, creationDesc),
			func(a, b *models.Service) bool {
				return newerFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
			},
		),
		Products: store.New(
			infraRepo.NewGormBackend(db, func() *models.Product { return &models.Product{} }, creationDesc),
			func(a, b *models.Product) bool {
				return newerFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
			},
		),
		Appointments: store.New(
			infraRepo.NewGormBackend(db, func() *models.Appointment { return &models.Appointment{} }, "date ASC, start_time ASC, id ASC"),
			func(a, b *models.Appointment) bool {
				if a.Date != b.Date {
					return a.Date < b.Date
				}
				if a.StartTime != b.StartTime {
					return a.StartTime < b.StartTime
				}
				return a.ID < b.ID
			},
		),
		Transactions: store.New(
			infraRepo.NewGormBackend(db, func() *models.Transaction { return &models.Transaction{} }, creationDesc),
			func(a, b *models.Transaction) bool {
				return newerFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
			},
		),
	}
}

// Load faz o fetch inicial dos seis stores em paralelo. Não há
// garantia de ordem entre recursos; cada store guarda o próprio
// estado de erro e o primeiro erro encontrado é devolvido.
func (s *Set) Load(ctx context.Context, tenantID uint) error {
	loaders := []func(context.Context, uint) error{
		s.Clients.Load,
		s.Professionals.Load,
		s.Services.Load,
		s.Products.Load,
		s.Appointments.Load,
		s.Transactions.Load,
	}

	errs := make([]error, len(loaders))
	var wg sync.WaitGroup
	for i, load := range loaders {
		wg.Add(1)
		go func(i int, load func(context.Context, uint) error) {
			defer wg.Done()
			errs[i] = load(ctx, tenantID)
		}(i, load)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Ensure deixa um store utilizável antes de uma leitura: refaz o
// fetch quando nunca carregou ou quando o chamador pediu refresh
// explícito. Um store em Failed com coleção antiga continua servindo
// o dado velho se o refetch falhar de novo.
func Ensure[T store.Row](ctx context.Context, s *store.Store[T], refresh bool) error {
	if refresh || s.State() != store.Ready {
		return s.Refetch(ctx)
	}
	return nil
}

// Close descarta os seis stores; respostas em voo viram no-op.
func (s *Set) Close() {
	s.Clients.Close()
	s.Professionals.Close()
	s.Services.Close()
	s.Products.Close()
	s.Appointments.Close()
	s.Transactions.Close()
}
