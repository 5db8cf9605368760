package store_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
)

// --- Mocks ---

type row struct {
	ID     uint
	Shop   uint
	Name   string
	Rank   int
	Status string
}

func (r *row) RowID() uint       { return r.ID }
func (r *row) TenantID() uint    { return r.Shop }
func (r *row) SetTenant(id uint) { r.Shop = id }

// byRankDesc ordena como os recursos reais: mais novo primeiro,
// estável entre chaves iguais.
func byRankDesc(a, b *row) bool { return a.Rank > b.Rank }

type fakeBackend struct {
	mu     sync.Mutex
	nextID uint
	rows   []*row

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	onList func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 1}
}

func (f *fakeBackend) seed(r *row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == 0 {
		r.ID = f.nextID
		f.nextID++
	} else if r.ID >= f.nextID {
		f.nextID = r.ID + 1
	}
	f.rows = append(f.rows, r)
}

func (f *fakeBackend) List(_ context.Context, tenantID uint) ([]*row, error) {
	f.mu.Lock()
	hook := f.onList
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*row
	for _, r := range f.rows {
		if r.Shop == tenantID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBackend) Get(_ context.Context, tenantID, id uint) (*row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.Shop == tenantID && r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeBackend) Create(_ context.Context, tenantID uint, r *row) (*row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *r
	cp.ID = f.nextID
	f.nextID++
	cp.Shop = tenantID
	// Normalização do lado servidor: é a versão dele que prevalece.
	cp.Name = strings.TrimSpace(cp.Name)
	f.rows = append(f.rows, &cp)
	echo := cp
	return &echo, nil
}

func (f *fakeBackend) Update(_ context.Context, tenantID, id uint, fields store.Fields) (*row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, r := range f.rows {
		if r.Shop == tenantID && r.ID == id {
			if v, ok := fields["name"]; ok {
				r.Name = strings.TrimSpace(v.(string))
			}
			if v, ok := fields["rank"]; ok {
				r.Rank = v.(int)
			}
			if v, ok := fields["status"]; ok {
				r.Status = v.(string)
			}
			cp := *r
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeBackend) Delete(_ context.Context, tenantID, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.rows {
		if r.Shop == tenantID && r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeBackend) Count(_ context.Context, tenantID uint, _ store.Fields) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.rows {
		if r.Shop == tenantID {
			n++
		}
	}
	return n, nil
}

func loadedStore(t *testing.T, backend *fakeBackend, tenantID uint) *store.Store[*row] {
	t.Helper()
	s := store.New[*row](backend, byRankDesc)
	if err := s.Load(context.Background(), tenantID); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.State() != store.Ready {
		t.Fatalf("state = %v, want ready", s.State())
	}
	return s
}

func names(rows []*row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func assertOrder(t *testing.T, rows []*row, want ...string) {
	t.Helper()
	got := names(rows)
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rows = %v, want %v", got, want)
		}
	}
}

// --- Load ---

func TestLoad_SortsCollection(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(&row{Shop: 1, Name: "velho", Rank: 1})
	backend.seed(&row{Shop: 1, Name: "novo", Rank: 3})
	backend.seed(&row{Shop: 1, Name: "meio", Rank: 2})

	s := loadedStore(t, backend, 1)

	assertOrder(t, s.Rows(), "novo", "meio", "velho")
}

func TestLoad_RequiresTenant(t *testing.T) {
	s := store.New[*row](newFakeBackend(), byRankDesc)

	if err := s.Load(context.Background(), 0); !errors.Is(err, store.ErrNoTenant) {
		t.Fatalf("err = %v, want ErrNoTenant", err)
	}
	if s.State() != store.Uninitialized {
		t.Fatalf("state = %v, want uninitialized", s.State())
	}
}

func TestLoad_TenantSwitchDiscardsRows(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(&row{Shop: 1, Name: "da-um", Rank: 1})
	backend.seed(&row{Shop: 2, Name: "da-dois", Rank: 1})

	s := loadedStore(t, backend, 1)

	if err := s.Load(context.Background(), 2); err != nil {
		t.Fatalf("load tenant 2: %v", err)
	}

	assertOrder(t, s.Rows(), "da-dois")
	if s.Tenant() != 2 {
		t.Fatalf("tenant = %d, want 2", s.Tenant())
	}
}

func TestLoad_FailurePreservesPreviousRows(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(&row{Shop: 1, Name: "antigo", Rank: 1})

	s := loadedStore(t, backend, 1)

	backend.mu.Lock()
	backend.listErr = errors.New("db down")
	backend.mu.Unlock()

	if err := s.Refetch(context.Background()); err == nil {
		t.Fatal("refetch should fail")
	}

	if s.State() != store.Failed {
		t.Fatalf("state = %v, want failed", s.State())
	}
	// Dado velho porém válido continua servível.
	assertOrder(t, s.Rows(), "antigo")

	backend.mu.Lock()
	backend.listErr = nil
	backend.mu.Unlock()

	if err := s.Refetch(context.Background()); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if s.State() != store.Ready {
		t.Fatalf("state = %v, want ready", s.State())
	}
}

// --- Mutações ---

func TestCreate_UsesBackendEcho(t *testing.T) {
	backend := newFakeBackend()
	s := loadedStore(t, backend, 1)

	created, err := s.Create(context.Background(), &row{Name: "  Ana  ", Rank: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A versão local é a do servidor, com id e normalização dele.
	if created.ID == 0 {
		t.Fatal("echo should carry the backend id")
	}
	if created.Name != "Ana" {
		t.Fatalf("name = %q, want backend-normalized %q", created.Name, "Ana")
	}

	got, ok := s.GetLocal(created.ID)
	if !ok {
		t.Fatal("created row missing from collection")
	}
	if got.Name != "Ana" {
		t.Fatalf("local name = %q, want %q", got.Name, "Ana")
	}
}

func TestCreate_InsertsInOrder(t *testing.T) {
	backend := newFakeBackend()
	s := loadedStore(t, backend, 1)

	for _, r := range []*row{
		{Name: "b", Rank: 2},
		{Name: "d", Rank: 4},
		{Name: "a", Rank: 1},
		{Name: "c", Rank: 3},
	} {
		if _, err := s.Create(context.Background(), r); err != nil {
			t.Fatalf("create %s: %v", r.Name, err)
		}
	}

	assertOrder(t, s.Rows(), "d", "c", "b", "a")
}

func TestCreate_StableAmongEqualKeys(t *testing.T) {
	backend := newFakeBackend()
	s := loadedStore(t, backend, 1)

	for _, name := range []string{"primeiro", "segundo", "terceiro"} {
		if _, err := s.Create(context.Background(), &row{Name: name, Rank: 7}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	// Chaves iguais: quem chegou antes permanece antes.
	assertOrder(t, s.Rows(), "primeiro", "segundo", "terceiro")
}

func TestCreate_FailureLeavesCollectionIntact(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(&row{Shop: 1, Name: "unico", Rank: 1})

	s := loadedStore(t, backend, 1)

	backend.mu.Lock()
	backend.createErr = errors.New("constraint violation")
	backend.mu.Unlock()

	if _, err := s.Create(context.Background(), &row{Name: "falha", Rank: 2}); err == nil {
		t.Fatal("create should fail")
	}

	assertOrder(t, s.Rows(), "unico")
	if s.State() != store.Ready {
		t.Fatalf("state = %v, want ready", s.State())
	}
}

func TestUpdate_FailureLeavesRowIntact(t *testing.T) {
	backend := newFakeBackend()
	s := loadedStore(t, backend, 1)

	a, _ := s.Create(context.Background(), &row{Name: "a", Rank: 1, Status: "active"})

	backend.mu.Lock()
	backend.updateErr = errors.New("db down")
	backend.mu.Unlock()

	if _, err := s.Update(context.Background(), a.ID, store.Fields{"status": "inactive"}); err == nil {
		t.Fatal("update should fail")
	}

	got, ok := s.GetLocal(a.ID)
	if !ok {
		t.Fatal("row should remain in collection")
	}
	if got.Status != "active" || got.Name != "a" || got.Rank != 1 {
		t.Fatalf("row = %+v, want unchanged", got)
	}
}

func TestMutation_RejectedBeforeReady(t *testing.T) {
	s := store.New[*row](newFakeBackend(), byRankDesc)

	if _, err := s.Create(context.Background(), &row{Name: "x"}); !errors.Is(err, store.ErrNoTenant) {
		t.Fatalf("create err = %v, want ErrNoTenant", err)
	}

	backend := newFakeBackend()
	backend.mu.Lock()
	backend.listErr = errors.New("db down")
	backend.mu.Unlock()

	s = store.New[*row](backend, byRankDesc)
	_ = s.Load(context.Background(), 1)

	if _, err := s.Create(context.Background(), &row{Name: "x"}); !errors.Is(err, store.ErrNotReady) {
		t.Fatalf("create err = %v, want ErrNotReady", err)
	}
}

func TestUpdate_RepositionsWhenKeyChanges(t *testing.T) {
	backend := newFakeBackend()
	s := loadedStore(t, backend, 1)

	a, _ := s.Create(context.Background(), &row{Name: "a", Rank: 1})
	if _, err := s.Create(context.Background(), &row{Name: "b", Rank: 2}); err != nil {
		t.Fatalf("create: %v", err)
	}

	assertOrder(t, s.Rows(), "b", "a")

	if _, err := s.Update(context.Background(), a.ID, store.Fields{"rank": 9}); err != nil {
		t.Fatalf("update: %v", err)
	}

	assertOrder(t, s.Rows(), "a", "b")
}

func TestUpdate_NotFoundReconcilesLocal(t *testing.T) {
	backend := newFakeBackend()
	s := loadedStore(t, backend, 1)

	a, _ := s.Create(context.Background(), &row{Name: "a", Rank: 1})

	// Removida por fora: o store ainda tem a linha local.
	if err := backend.Delete(context.Background(), 1, a.ID); err != nil {
		t.Fatalf("external delete: %v", err)
	}

	_, err := s.Update(context.Background(), a.ID, store.Fields{"name": "z"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if _, ok := s.GetLocal(a.ID); ok {
		t.Fatal("stale local row should have been removed")
	}
}

func TestDelete_NotFoundIsIdempotent(t *testing.T) {
	backend := newFakeBackend()
	s := loadedStore(t, backend, 1)

	a, _ := s.Create(context.Background(), &row{Name: "a", Rank: 1})

	if err := s.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(context.Background(), a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
}

// --- Respostas atrasadas ---

func TestClose_DiscardsInFlightResponse(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(&row{Shop: 1, Name: "tarde", Rank: 1})

	s := store.New[*row](backend, byRankDesc)

	gate := make(chan struct{})
	started := make(chan struct{})
	backend.mu.Lock()
	backend.onList = func() {
		close(started)
		<-gate
	}
	backend.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.Load(context.Background(), 1)
	}()

	<-started
	s.Close()
	close(gate)

	if err := <-done; err != nil {
		t.Fatalf("stale load should be a silent no-op, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0 after close", s.Len())
	}
}

func TestLoad_NewerLoadWinsOverStale(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(&row{Shop: 1, Name: "da-um", Rank: 1})
	backend.seed(&row{Shop: 2, Name: "da-dois", Rank: 1})

	s := store.New[*row](backend, byRankDesc)

	gate := make(chan struct{})
	started := make(chan struct{})
	backend.mu.Lock()
	backend.onList = func() {
		backend.mu.Lock()
		backend.onList = nil
		backend.mu.Unlock()
		close(started)
		<-gate
	}
	backend.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.Load(context.Background(), 1)
	}()

	<-started

	// Um Load mais novo assume enquanto o primeiro está em voo.
	if err := s.Load(context.Background(), 2); err != nil {
		t.Fatalf("newer load: %v", err)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("stale load should be a silent no-op, got %v", err)
	}

	assertOrder(t, s.Rows(), "da-dois")
	if s.Tenant() != 2 {
		t.Fatalf("tenant = %d, want 2", s.Tenant())
	}
}

// --- Cenário ---

func TestScenario_CreateUpdateDelete(t *testing.T) {
	backend := newFakeBackend()
	s := loadedStore(t, backend, 1)

	ana, err := s.Create(context.Background(), &row{Name: "Ana", Rank: 1, Status: "active"})
	if err != nil {
		t.Fatalf("create ana: %v", err)
	}
	beatriz, err := s.Create(context.Background(), &row{Name: "Beatriz", Rank: 2, Status: "active"})
	if err != nil {
		t.Fatalf("create beatriz: %v", err)
	}

	// Mais nova primeiro.
	assertOrder(t, s.Rows(), "Beatriz", "Ana")

	// Campo fora da chave de ordenação não mexe na posição.
	updated, err := s.Update(context.Background(), ana.ID, store.Fields{"status": "inactive"})
	if err != nil {
		t.Fatalf("update ana: %v", err)
	}
	if updated.Status != "inactive" {
		t.Fatalf("status = %q, want inactive", updated.Status)
	}
	assertOrder(t, s.Rows(), "Beatriz", "Ana")

	if err := s.Delete(context.Background(), beatriz.ID); err != nil {
		t.Fatalf("delete beatriz: %v", err)
	}
	assertOrder(t, s.Rows(), "Ana")

	n, err := s.Count(context.Background(), nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}
