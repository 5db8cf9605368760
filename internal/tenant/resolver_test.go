package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/tenant"
)

// --- Mocks ---

type fakeSource struct {
	shops map[uint]*models.Barbershop
	err   error
}

func (f *fakeSource) BarbershopByUser(_ context.Context, userID uint) (*models.Barbershop, error) {
	if f.err != nil {
		return nil, f.err
	}
	shop, ok := f.shops[userID]
	if !ok {
		return nil, tenant.ErrUnresolved
	}
	return shop, nil
}

// --- Tests ---

func TestResolve_Success(t *testing.T) {
	source := &fakeSource{shops: map[uint]*models.Barbershop{
		7: {Name: "Navalha de Ouro"},
	}}
	source.shops[7].ID = 42

	r := tenant.NewResolver(source)

	shop, err := r.Resolve(context.Background(), 7)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if shop.ID != 42 {
		t.Fatalf("shop id = %d, want 42", shop.ID)
	}
}

func TestResolve_NoUser(t *testing.T) {
	r := tenant.NewResolver(&fakeSource{})

	if _, err := r.Resolve(context.Background(), 0); !errors.Is(err, tenant.ErrUnresolved) {
		t.Fatalf("err = %v, want ErrUnresolved", err)
	}
}

func TestResolve_UnknownUser(t *testing.T) {
	r := tenant.NewResolver(&fakeSource{shops: map[uint]*models.Barbershop{}})

	if _, err := r.Resolve(context.Background(), 99); !errors.Is(err, tenant.ErrUnresolved) {
		t.Fatalf("err = %v, want ErrUnresolved", err)
	}
}

func TestResolve_NeverFallsBack(t *testing.T) {
	// Fonte devolvendo barbearia zerada equivale a não resolver.
	source := &fakeSource{shops: map[uint]*models.Barbershop{
		7: {},
	}}

	r := tenant.NewResolver(source)

	if _, err := r.Resolve(context.Background(), 7); !errors.Is(err, tenant.ErrUnresolved) {
		t.Fatalf("err = %v, want ErrUnresolved", err)
	}
}

func TestResolve_SourceErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	r := tenant.NewResolver(&fakeSource{err: boom})

	if _, err := r.Resolve(context.Background(), 7); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want source error", err)
	}
}
