package store

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ======================================================
// ERROS
// ======================================================

var (
	// ErrNotFound indica que a linha não existe mais no backend.
	// Em update/delete é um desfecho benigno: o store reconcilia
	// removendo a linha local, se existir.
	ErrNotFound = errors.New("store: row not found")

	// ErrNotReady indica mutação antes do fetch inicial completar.
	ErrNotReady = errors.New("store: not ready")

	// ErrNoTenant indica operação sem tenant resolvido.
	// Nunca há fallback de tenant.
	ErrNoTenant = errors.New("store: tenant not resolved")

	ErrClosed = errors.New("store: closed")
)

// ======================================================
// CONTRATOS
// ======================================================

// Row é qualquer linha de recurso pertencente a uma barbearia.
type Row interface {
	RowID() uint
	TenantID() uint
	SetTenant(id uint)
}

// Fields são campos parciais de um update (ou filtros de count).
type Fields map[string]any

// Backend é o acesso remoto escopado por barbearia. Toda operação
// exige tenant resolvido e nunca alarga o escopo.
type Backend[T Row] interface {
	List(ctx context.Context, tenantID uint) ([]T, error)
	Get(ctx context.Context, tenantID, id uint) (T, error)
	Create(ctx context.Context, tenantID uint, row T) (T, error)
	Update(ctx context.Context, tenantID, id uint, fields Fields) (T, error)
	Delete(ctx context.Context, tenantID, id uint) error
	Count(ctx context.Context, tenantID uint, filters Fields) (int64, error)
}

// ======================================================
// ESTADOS
// ======================================================

type State int

const (
	Uninitialized State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ======================================================
// STORE GENÉRICO
// ======================================================

// Store mantém a coleção ordenada de um recurso, escopada a uma
// barbearia e consistente com o backend. Após qualquer mutação bem
// sucedida a coleção contém exatamente a linha devolvida pelo
// backend, nunca um merge construído no cliente (eco autoritativo).
//
// Mutações concorrentes na mesma linha não são serializadas: vale a
// resposta que chegar por último (last-response-wins). Um Refetch
// reconcilia.
type Store[T Row] struct {
	backend Backend[T]
	less    func(a, b T) bool

	mu       sync.Mutex
	state    State
	tenantID uint
	rows     []T
	lastErr  error

	// gen invalida respostas atrasadas: um Load mais novo ou um
	// Close descartam qualquer resposta de geração anterior.
	gen    uint64
	closed bool
}

// New cria um store vazio (Uninitialized). less define a ordenação
// estável do recurso e é re-aplicada após cada insert.
func New[T Row](backend Backend[T], less func(a, b T) bool) *Store[T] {
	return &Store[T]{
		backend: backend,
		less:    less,
	}
}

// Load busca a coleção da barbearia informada. Trocar de barbearia
// descarta as linhas da anterior antes do fetch, para nunca exibir
// dados de outro tenant.
func (s *Store[T]) Load(ctx context.Context, tenantID uint) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if tenantID == 0 {
		s.mu.Unlock()
		return ErrNoTenant
	}
	if tenantID != s.tenantID {
		s.rows = nil
		s.lastErr = nil
	}
	s.tenantID = tenantID
	s.state = Loading
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	rows, err := s.backend.List(ctx, tenantID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.gen != gen {
		// Resposta obsoleta: outro Load (ou Close) assumiu.
		return nil
	}

	if err != nil {
		// Coleção anterior é preservada: dado velho porém válido.
		s.state = Failed
		s.lastErr = err
		return err
	}

	sort.SliceStable(rows, func(i, j int) bool { return s.less(rows[i], rows[j]) })
	s.rows = rows
	s.state = Ready
	s.lastErr = nil
	return nil
}

// Refetch refaz o fetch completo para a barbearia atual.
func (s *Store[T]) Refetch(ctx context.Context) error {
	s.mu.Lock()
	tenantID := s.tenantID
	s.mu.Unlock()
	return s.Load(ctx, tenantID)
}

// Create insere via backend e posiciona a linha devolvida conforme a
// ordenação do recurso. Falha de criação é local: a coleção não muda.
func (s *Store[T]) Create(ctx context.Context, row T) (T, error) {
	var zero T

	gen, tenantID, err := s.beginMutation()
	if err != nil {
		return zero, err
	}

	echo, err := s.backend.Create(ctx, tenantID, row)
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed && s.gen == gen {
		s.insertSorted(echo)
	}
	return echo, nil
}

// Update aplica campos parciais via backend e substitui a linha local
// pela devolvida. Se o backend reportar not-found, a linha local (se
// houver) é removida e ErrNotFound é devolvido ao chamador.
func (s *Store[T]) Update(ctx context.Context, id uint, fields Fields) (T, error) {
	var zero T

	gen, tenantID, err := s.beginMutation()
	if err != nil {
		return zero, err
	}

	echo, err := s.backend.Update(ctx, tenantID, id, fields)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, ErrNotFound) && !s.closed && s.gen == gen {
			s.removeLocal(id)
		}
		return zero, err
	}

	if !s.closed && s.gen == gen {
		// Remove e reinsere: se o update mudou a chave de ordenação,
		// a posição precisa acompanhar.
		if s.removeLocal(id) {
			s.insertSorted(echo)
		}
		// Linha ausente localmente: editada em outro lugar, aceita
		// como eventualmente consistente no próximo fetch completo.
	}
	return echo, nil
}

// Delete remove via backend e, no sucesso, da coleção local.
func (s *Store[T]) Delete(ctx context.Context, id uint) error {
	gen, tenantID, err := s.beginMutation()
	if err != nil {
		return err
	}

	err = s.backend.Delete(ctx, tenantID, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if !s.closed && s.gen == gen {
		s.removeLocal(id)
	}
	return err
}

// Count consulta o backend sem tocar na coleção local.
func (s *Store[T]) Count(ctx context.Context, filters Fields) (int64, error) {
	s.mu.Lock()
	tenantID := s.tenantID
	s.mu.Unlock()
	if tenantID == 0 {
		return 0, ErrNoTenant
	}
	return s.backend.Count(ctx, tenantID, filters)
}

// Close descarta o store. Respostas em voo são ignoradas.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
}

// ======================================================
// LEITURA
// ======================================================

func (s *Store[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store[T]) Tenant() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenantID
}

// Rows devolve um snapshot da coleção na ordem do recurso.
func (s *Store[T]) Rows() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// GetLocal busca uma linha no snapshot local, sem ir ao backend.
func (s *Store[T]) GetLocal(id uint) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.RowID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// ======================================================
// INTERNOS
// ======================================================

func (s *Store[T]) beginMutation() (gen uint64, tenantID uint, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, 0, ErrClosed
	}
	if s.tenantID == 0 {
		return 0, 0, ErrNoTenant
	}
	if s.state != Ready {
		return 0, 0, ErrNotReady
	}
	return s.gen, s.tenantID, nil
}

// insertSorted insere mantendo a ordenação estável: entre chaves
// iguais, quem chegou antes permanece antes.
func (s *Store[T]) insertSorted(row T) {
	i := sort.Search(len(s.rows), func(i int) bool {
		return s.less(row, s.rows[i])
	})
	s.rows = append(s.rows, row)
	copy(s.rows[i+1:], s.rows[i:])
	s.rows[i] = row
}

func (s *Store[T]) removeLocal(id uint) bool {
	for i, r := range s.rows {
		if r.RowID() == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true
		}
	}
	return false
}
