package pathfinder

import (
	"context"

	"github.com/agenthands/cartograph/internal/core/model"
)

// MockStore records every query the finder issues. Shortest paths are keyed
// by "start|end".
type MockStore struct {
	Reachable bool

	Paths   map[string]*model.Path
	PathErr error

	Neighbors   []string
	NeighborErr error

	ReachableCalls int
	PathCalls      int
	NeighborCalls  int
}

func (m *MockStore) IsReachable(ctx context.Context) bool {
	m.ReachableCalls++
	return m.Reachable
}

func (m *MockStore) ShortestPath(ctx context.Context, startID, endID string, maxHops int) (*model.Path, error) {
	m.PathCalls++
	if m.PathErr != nil {
		return nil, m.PathErr
	}
	if p, ok := m.Paths[startID+"|"+endID]; ok {
		return p, nil
	}
	if p, ok := m.Paths[endID+"|"+startID]; ok {
		return p, nil
	}
	return nil, nil
}

func (m *MockStore) NeighborsWithinHops(ctx context.Context, startID string, candidateIDs []string, maxHops int) ([]string, error) {
	m.NeighborCalls++
	if m.NeighborErr != nil {
		return nil, m.NeighborErr
	}
	return m.Neighbors, nil
}
