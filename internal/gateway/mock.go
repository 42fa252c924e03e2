package gateway

import (
	"context"
	"fmt"
	"sync"

	"ScoringDesk/internal/model"
)

// MockGateway serves fixed in-memory records for development and testing.
// Err, when set, is returned by every call. Counters track transport-level calls.
type MockGateway struct {
	Clients  []model.ClientRecord
	Scorings map[int64]model.ScoringRecord
	Err      error

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockGateway) Name() string { return "mock" }

// Calls returns how many times op reached the mock's "transport".
func (m *MockGateway) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *MockGateway) hit(ctx context.Context, op string) error {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[op]++
	m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.Err
}

func (m *MockGateway) ListClients(ctx context.Context, _ string) ([]model.ClientRecord, error) {
	if err := m.hit(ctx, "list"); err != nil {
		return nil, err
	}
	out := make([]model.ClientRecord, len(m.Clients))
	copy(out, m.Clients)
	return out, nil
}

func (m *MockGateway) GetClient(ctx context.Context, _ string, id int64) (model.ClientRecord, error) {
	if err := m.hit(ctx, "get"); err != nil {
		return model.ClientRecord{}, err
	}
	for _, c := range m.Clients {
		if c.ID == id {
			return c, nil
		}
	}
	return model.ClientRecord{}, fmt.Errorf("get client %d: %w", id, ErrNotFound)
}

// SearchClients mirrors HTTPGateway: no present criterion means no call at all.
func (m *MockGateway) SearchClients(ctx context.Context, _ string, c model.SearchCriteria) ([]model.ClientRecord, error) {
	if c.Empty() {
		return []model.ClientRecord{}, nil
	}
	if err := m.hit(ctx, "search"); err != nil {
		return nil, err
	}
	out := []model.ClientRecord{}
	for _, cl := range m.Clients {
		if c.Matches(cl) {
			out = append(out, cl)
		}
	}
	return out, nil
}

func (m *MockGateway) GetScoring(ctx context.Context, _ string, id int64) (model.ScoringRecord, error) {
	if err := m.hit(ctx, "scoring"); err != nil {
		return model.ScoringRecord{}, err
	}
	s, ok := m.Scorings[id]
	if !ok {
		return model.ScoringRecord{}, fmt.Errorf("get scoring %d: %w", id, ErrNotFound)
	}
	return s, nil
}
