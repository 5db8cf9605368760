package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/tenant"
)

// UserGormSource implementa tenant.Source sobre a tabela de usuários.
type UserGormSource struct {
	db *gorm.DB
}

func NewUserGormSource(db *gorm.DB) *UserGormSource {
	return &UserGormSource{db: db}
}

func (s *UserGormSource) BarbershopByUser(
	ctx context.Context,
	userID uint,
) (*models.Barbershop, error) {

	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Barbershop").
		First(&user, userID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenant.ErrUnresolved
		}
		return nil, err
	}

	if user.BarbershopID == 0 || user.Barbershop.ID == 0 {
		return nil, tenant.ErrUnresolved
	}
	return &user.Barbershop, nil
}
