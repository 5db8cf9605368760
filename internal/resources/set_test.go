package resources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/models"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
)

// --- Mocks ---

type clientBackend struct {
	rows    []*models.Client
	listErr error
	lists   int
}

func (b *clientBackend) List(_ context.Context, tenantID uint) ([]*models.Client, error) {
	b.lists++
	if b.listErr != nil {
		return nil, b.listErr
	}
	var out []*models.Client
	for _, r := range b.rows {
		if r.BarbershopID == tenantID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (b *clientBackend) Get(_ context.Context, _, _ uint) (*models.Client, error) {
	return nil, store.ErrNotFound
}

func (b *clientBackend) Create(_ context.Context, _ uint, r *models.Client) (*models.Client, error) {
	return r, nil
}

func (b *clientBackend) Update(_ context.Context, _, _ uint, _ store.Fields) (*models.Client, error) {
	return nil, store.ErrNotFound
}

func (b *clientBackend) Delete(_ context.Context, _, _ uint) error {
	return store.ErrNotFound
}

func (b *clientBackend) Count(_ context.Context, _ uint, _ store.Fields) (int64, error) {
	return int64(len(b.rows)), nil
}

// --- Tests ---

func TestNewerFirst(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name           string
		at, bt         time.Time
		aid, bid       uint
		aComesFirst    bool
	}{
		{"newer wins", base.Add(time.Hour), base, 1, 2, true},
		{"older loses", base, base.Add(time.Hour), 9, 1, false},
		{"same instant higher id wins", base, base, 5, 3, true},
		{"same instant lower id loses", base, base, 3, 5, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := newerFirst(tc.at, tc.aid, tc.bt, tc.bid); got != tc.aComesFirst {
				t.Fatalf("newerFirst = %v, want %v", got, tc.aComesFirst)
			}
		})
	}
}

func TestEnsure_RefetchesWhenNeverLoaded(t *testing.T) {
	backend := &clientBackend{}
	st := store.New[*models.Client](backend, func(a, b *models.Client) bool {
		return newerFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})

	// Sem Load prévio não há tenant: Ensure propaga a recusa.
	if err := Ensure(context.Background(), st, false); !errors.Is(err, store.ErrNoTenant) {
		t.Fatalf("err = %v, want ErrNoTenant", err)
	}
}

func TestEnsure_NoopWhenReady(t *testing.T) {
	backend := &clientBackend{}
	st := store.New[*models.Client](backend, func(a, b *models.Client) bool {
		return newerFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})

	if err := st.Load(context.Background(), 1); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := Ensure(context.Background(), st, false); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if backend.lists != 1 {
		t.Fatalf("lists = %d, want 1 (no refetch while ready)", backend.lists)
	}
}

func TestEnsure_RefreshForcesRefetch(t *testing.T) {
	backend := &clientBackend{}
	st := store.New[*models.Client](backend, func(a, b *models.Client) bool {
		return newerFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})

	if err := st.Load(context.Background(), 1); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := Ensure(context.Background(), st, true); err != nil {
		t.Fatalf("ensure refresh: %v", err)
	}
	if backend.lists != 2 {
		t.Fatalf("lists = %d, want 2", backend.lists)
	}
}

func TestEnsure_RecoversFailedStore(t *testing.T) {
	backend := &clientBackend{listErr: errors.New("db down")}
	st := store.New[*models.Client](backend, func(a, b *models.Client) bool {
		return newerFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})

	_ = st.Load(context.Background(), 1)
	if st.State() != store.Failed {
		t.Fatalf("state = %v, want failed", st.State())
	}

	backend.listErr = nil
	if err := Ensure(context.Background(), st, false); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if st.State() != store.Ready {
		t.Fatalf("state = %v, want ready", st.State())
	}
}
