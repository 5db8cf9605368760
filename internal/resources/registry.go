package resources

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
)

// Registry mantém um Set por barbearia, criado sob demanda no
// primeiro request autenticado daquele tenant. O tenant id chega
// resolvido de fora; o registry nunca o deduz.
type Registry struct {
	db *gorm.DB

	mu   sync.Mutex
	sets map[uint]*Set
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		db:   db,
		sets: make(map[uint]*Set),
	}
}

// ForTenant devolve o Set do tenant, disparando o fetch inicial na
// primeira vez. Falha de fetch inicial não descarta o Set: os stores
// ficam em Failed e um refetch explícito os recupera.
func (r *Registry) ForTenant(ctx context.Context, tenantID uint) (*Set, error) {
	if tenantID == 0 {
		return nil, store.ErrNoTenant
	}

	r.mu.Lock()
	set, ok := r.sets[tenantID]
	if !ok {
		set = NewSet(r.db)
		r.sets[tenantID] = set
	}
	r.mu.Unlock()

	if ok {
		return set, nil
	}

	if err := set.Load(ctx, tenantID); err != nil {
		return set, err
	}
	return set, nil
}

// Peek devolve o Set do tenant apenas se já estiver em memória. Não
// dispara fetch: usado por caminhos fora da sessão (webhooks) que só
// precisam reconciliar caches já carregados.
func (r *Registry) Peek(tenantID uint) (*Set, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.sets[tenantID]
	return set, ok
}

// Drop descarta o Set de um tenant (logout, remoção da conta).
func (r *Registry) Drop(tenantID uint) {
	r.mu.Lock()
	set, ok := r.sets[tenantID]
	delete(r.sets, tenantID)
	r.mu.Unlock()

	if ok {
		set.Close()
	}
}
