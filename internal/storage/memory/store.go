package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

type state struct {
	seq          int64
	users        map[int64]models.User
	applications map[int64]models.Application
	trucks       map[int64]models.Truck
	tiers        map[int64]models.Tier
	trips        map[int64]models.Trip
}

func newState() *state {
	return &state{
		users:        make(map[int64]models.User),
		applications: make(map[int64]models.Application),
		trucks:       make(map[int64]models.Truck),
		tiers:        make(map[int64]models.Tier),
		trips:        make(map[int64]models.Trip),
	}
}

func (st *state) clone() state {
	return state{
		seq:          st.seq,
		users:        maps.Clone(st.users),
		applications: maps.Clone(st.applications),
		trucks:       maps.Clone(st.trucks),
		tiers:        maps.Clone(st.tiers),
		trips:        maps.Clone(st.trips),
	}
}

func (st *state) nextID() int64 {
	st.seq++
	return st.seq
}

// Store keeps every record in process memory. It enforces the same unique and
// reference constraints as the Postgres schema so services behave identically
// against both. Transactions take the store lock for their whole duration and
// restore a snapshot on failure.
type Store struct {
	mu   *sync.Mutex
	st   *state
	inTx bool
	now  func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{mu: &sync.Mutex{}, st: newState(), now: time.Now}
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithTx runs fn with exclusive access and rolls back every change if fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(tx storage.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	tx := &Store{mu: s.mu, st: s.st, inTx: true, now: s.now}
	if err := fn(tx); err != nil {
		*s.st = snapshot
		return err
	}
	if err := ctx.Err(); err != nil {
		*s.st = snapshot
		return err
	}
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}
