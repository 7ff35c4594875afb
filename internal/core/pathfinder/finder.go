package pathfinder

import (
	"context"
	"log"

	"github.com/agenthands/cartograph/internal/core/model"
)

// GraphStore is the read-only slice of the store the finder queries.
type GraphStore interface {
	IsReachable(ctx context.Context) bool
	ShortestPath(ctx context.Context, startID, endID string, maxHops int) (*model.Path, error)
	NeighborsWithinHops(ctx context.Context, startID string, candidateIDs []string, maxHops int) ([]string, error)
}

const (
	// Hop bound for pairwise shortest-path search.
	pathMaxHops = 3
	// Hop bound for the neighborhood fallback.
	neighborMaxHops = 2
	// Neighborhood results are truncated to this many ids, in store order.
	neighborLimit = 10
	// The last-resort fallback returns at most this many of the valid ids.
	fallbackLimit = 5
)

// Finder computes the explanatory subgraph behind a chat answer. The LLM
// names the nodes it believes are relevant but cannot see topology; the
// finder supplies the connecting structure, degrading through three tiers
// rather than ever failing the chat response.
type Finder struct {
	Store GraphStore
}

func NewFinder(store GraphStore) *Finder {
	return &Finder{Store: store}
}

// FindPath resolves relevantIDs against the current graph and returns a
// connected path between them, a reachable neighborhood around the first of
// them, or a bounded list of the ids themselves. It returns nil only when no
// relevant id exists in the graph, and it never returns an error: every
// store failure degrades to the next tier.
func (f *Finder) FindPath(ctx context.Context, relevantIDs []string, g *model.Graph) *model.Path {
	if g == nil || len(g.Nodes) == 0 {
		return nil
	}

	valid := make([]string, 0, len(relevantIDs))
	for _, id := range relevantIDs {
		if g.HasNode(id) {
			valid = append(valid, id)
		}
	}

	if len(valid) == 0 {
		return nil
	}
	// A single node has no path to draw; skip the store entirely.
	if len(valid) == 1 {
		return &model.Path{Nodes: valid}
	}

	if !f.Store.IsReachable(ctx) {
		return &model.Path{Nodes: firstN(valid, fallbackLimit)}
	}

	if path := f.pairwisePaths(ctx, valid); path != nil {
		return path
	}
	if path := f.neighborhood(ctx, valid); path != nil {
		return path
	}

	return &model.Path{Nodes: firstN(valid, fallbackLimit)}
}

// pairwisePaths is tier 1: shortest undirected paths between every unordered
// pair of valid ids. O(n²) pairs is fine, n is bounded by the LLM's
// suggestion count. The path covering the most nodes wins; ties go to the
// first pair found.
func (f *Finder) pairwisePaths(ctx context.Context, valid []string) *model.Path {
	var best *model.Path
	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid); j++ {
			path, err := f.Store.ShortestPath(ctx, valid[i], valid[j], pathMaxHops)
			if err != nil {
				log.Printf("Warning: shortest path query failed (%s, %s): %v", valid[i], valid[j], err)
				return nil
			}
			if path == nil || len(path.Nodes) == 0 {
				continue
			}
			if best == nil || len(path.Nodes) > len(best.Nodes) {
				best = path
			}
		}
	}
	return best
}

// neighborhood is tier 2: which of the remaining valid ids can be reached
// from the first one within two hops. The store appends the anchor and
// truncates to ten in its own order, so the anchor is not guaranteed to
// survive truncation.
func (f *Finder) neighborhood(ctx context.Context, valid []string) *model.Path {
	ids, err := f.Store.NeighborsWithinHops(ctx, valid[0], valid[1:], neighborMaxHops)
	if err != nil {
		log.Printf("Warning: neighborhood query failed for %s: %v", valid[0], err)
		return nil
	}
	if len(ids) == 0 {
		return nil
	}
	return &model.Path{Nodes: firstN(ids, neighborLimit)}
}

func firstN(ids []string, n int) []string {
	if len(ids) > n {
		return ids[:n]
	}
	return ids
}
