package tenant

import (
	"context"
	"errors"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
)

// ErrUnresolved indica que o usuário não mapeia para nenhuma
// barbearia. Componentes dependentes param aqui: nunca existe
// barbearia de fallback.
var ErrUnresolved = errors.New("tenant: unresolved")

// Source é a consulta usuário → barbearia.
type Source interface {
	BarbershopByUser(ctx context.Context, userID uint) (*models.Barbershop, error)
}

// Resolver mapeia o usuário autenticado para exatamente uma
// barbearia. Resolve de novo a cada chamada: troca de identidade
// (login/logout) é simplesmente uma nova resolução.
type Resolver struct {
	source Source
}

func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

func (r *Resolver) Resolve(ctx context.Context, userID uint) (*models.Barbershop, error) {
	if userID == 0 {
		return nil, ErrUnresolved
	}

	shop, err := r.source.BarbershopByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shop == nil || shop.ID == 0 {
		return nil, ErrUnresolved
	}
	return shop, nil
}
