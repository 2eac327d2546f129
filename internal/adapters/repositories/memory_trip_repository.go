package repositories

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"trip-log-service/internal/domain"

	"github.com/google/uuid"
)

// MemoryTripRepository keeps trips in process memory. It backs tests and
// local runs without Postgres.
type MemoryTripRepository struct {
	mu     sync.RWMutex
	trips  map[string]*domain.Trip
	nextID int64
}

func NewMemoryTripRepository() *MemoryTripRepository {
	return &MemoryTripRepository{trips: map[string]*domain.Trip{}}
}

func (m *MemoryTripRepository) SaveTrip(_ context.Context, t *domain.Trip) error {
	if t == nil {
		return fmt.Errorf("save trip: trip is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, ok := m.trips[t.ID]; ok {
		return fmt.Errorf("save trip id=%s: already exists", t.ID)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	for i := range t.Logs {
		m.nextID++
		t.Logs[i].ID = m.nextID
	}

	cp := *t
	cp.Logs = slices.Clone(t.Logs)
	m.trips[t.ID] = &cp
	return nil
}

func (m *MemoryTripRepository) GetTrip(_ context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trips[id]
	if !ok {
		return nil, fmt.Errorf("get trip id=%s: %w", id, domain.ErrNotFound)
	}
	cp := *t
	cp.Logs = slices.Clone(t.Logs)
	return &cp, nil
}

func (m *MemoryTripRepository) ListTrips(_ context.Context) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		cp := *t
		cp.Logs = nil
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *domain.Trip) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out, nil
}

func (m *MemoryTripRepository) ListLogs(ctx context.Context, tripID string) ([]domain.DailyLog, error) {
	t, err := m.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return t.Logs, nil
}

func (m *MemoryTripRepository) GetLog(ctx context.Context, tripID string, logID int64) (*domain.DailyLog, error) {
	t, err := m.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	for i := range t.Logs {
		if t.Logs[i].ID == logID {
			return &t.Logs[i], nil
		}
	}
	return nil, fmt.Errorf("get log trip=%s id=%d: %w", tripID, logID, domain.ErrNotFound)
}
