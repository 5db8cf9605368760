package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	infraRepo "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/infra/repository"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/timezone"
)

// Metrics é o quadro do dashboard. Cada campo é calculado por uma
// consulta escopada independente: falha em uma métrica deixa o campo
// nulo sem bloquear as demais.
type Metrics struct {
	TotalClients      *int64   `json:"total_clients"`
	TodayAppointments *int64   `json:"today_appointments"`
	MonthRevenue      *float64 `json:"month_revenue"`
	TotalServices     *int64   `json:"total_services"`
	MonthExpenses     *float64 `json:"month_expenses"`
	LowStockProducts  *int64   `json:"low_stock_products"`

	GeneratedAt time.Time `json:"generated_at"`
}

type Service struct {
	db  *gorm.DB
	rdb *redis.Client
	ttl time.Duration
}

func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		db:  db,
		rdb: rdb,
		ttl: 60 * time.Second,
	}
}

// Dashboard devolve as métricas da barbearia, servindo do cache
// quando possível. refresh=true recalcula e sobrescreve o registro
// anterior por inteiro.
func (s *Service) Dashboard(
	ctx context.Context,
	shop *models.Barbershop,
	refresh bool,
) *Metrics {

	key := fmt.Sprintf("stats:dashboard:%d", shop.ID)

	if !refresh && s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached Metrics
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached
			}
		}
	}

	m := s.compute(ctx, shop)

	if s.rdb != nil {
		if raw, err := json.Marshal(m); err == nil {
			if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				log.Println("stats cache error:", err)
			}
		}
	}

	return m
}

func (s *Service) compute(ctx context.Context, shop *models.Barbershop) *Metrics {
	now := timezone.NowIn(shop.Timezone)
	today := DayOf(shop.Timezone, now)
	monthFrom, monthTo := MonthBounds(shop.Timezone, now)

	m := &Metrics{GeneratedAt: now}

	if n, err := s.countRows(ctx, shop.ID, &models.Client{},
		"status = ?", models.ClientStatusActive); err == nil {
		m.TotalClients = &n
	} else {
		log.Println("stats: total_clients:", err)
	}

	if n, err := s.countRows(ctx, shop.ID, &models.Appointment{},
		"date = ? AND status <> 'cancelled'", today); err == nil {
		m.TodayAppointments = &n
	} else {
		log.Println("stats: today_appointments:", err)
	}

	if v, err := s.sumTransactions(ctx, shop.ID,
		models.TransactionRevenue, monthFrom, monthTo); err == nil {
		m.MonthRevenue = &v
	} else {
		log.Println("stats: month_revenue:", err)
	}

	if n, err := s.countRows(ctx, shop.ID, &models.Service{}, "", nil); err == nil {
		m.TotalServices = &n
	} else {
		log.Println("stats: total_services:", err)
	}

	if v, err := s.sumTransactions(ctx, shop.ID,
		models.TransactionExpense, monthFrom, monthTo); err == nil {
		m.MonthExpenses = &v
	} else {
		log.Println("stats: month_expenses:", err)
	}

	if n, err := s.countRows(ctx, shop.ID, &models.Product{},
		"stock <= min_stock", nil); err == nil {
		m.LowStockProducts = &n
	} else {
		log.Println("stats: low_stock_products:", err)
	}

	return m
}

func (s *Service) countRows(
	ctx context.Context,
	tenantID uint,
	model any,
	cond string,
	arg any,
) (int64, error) {

	q := s.db.WithContext(ctx).
		Model(model).
		Scopes(infraRepo.ForTenant(tenantID))

	if cond != "" {
		if arg != nil {
			q = q.Where(cond, arg)
		} else {
			q = q.Where(cond)
		}
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Service) sumTransactions(
	ctx context.Context,
	tenantID uint,
	txType string,
	from string,
	to string,
) (float64, error) {

	var total float64
	err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Scopes(infraRepo.ForTenant(tenantID)).
		Where("type = ? AND status = ? AND date >= ? AND date < ?",
			txType, models.TransactionPaid, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
