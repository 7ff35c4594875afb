package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/cartograph/internal/core/model"
	"github.com/agenthands/cartograph/internal/driver"
)

// Store adapts a GraphDriver to the entity-graph operations the rest of the
// system needs: idempotent upsert, full read-back, reachability probe and
// the two traversal queries the path-finder issues.
type Store struct {
	Driver driver.GraphDriver
}

func New(d driver.GraphDriver) *Store {
	return &Store{Driver: d}
}

// UpsertGraph merges every node by id (label and properties last-write-wins)
// and then merges every edge under its sanitized relationship type. Edges
// whose endpoints are missing match nothing in the store and are skipped;
// that is per-edge partial failure, not an error.
func (s *Store) UpsertGraph(ctx context.Context, g *model.Graph) error {
	for _, n := range g.Nodes {
		props := n.Properties
		if props == nil {
			props = map[string]interface{}{}
		}
		params := map[string]interface{}{
			"id":    n.ID,
			"label": n.Label,
			"props": props,
		}
		if _, err := s.Driver.ExecuteQuery(ctx, driver.MergeNodeQuery, params); err != nil {
			return fmt.Errorf("failed to merge node %q: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges {
		relType := SanitizeRelType(e.RelationshipType)
		if !ValidRelType(relType) {
			return fmt.Errorf("refusing to splice unsafe relationship type %q", relType)
		}

		query := fmt.Sprintf(driver.MergeEdgeQueryTemplate, relType)
		params := map[string]interface{}{
			"source_id": e.SourceID,
			"target_id": e.TargetID,
		}
		if _, err := s.Driver.ExecuteQuery(ctx, query, params); err != nil {
			return fmt.Errorf("failed to merge edge %s-[%s]->%s: %w", e.SourceID, relType, e.TargetID, err)
		}
	}

	return nil
}

// FetchGraph reads back every Entity node and every edge between them.
// The id and label keys are dropped from each node's property map so they
// are not reported twice.
func (s *Store) FetchGraph(ctx context.Context) (*model.Graph, error) {
	nodeResult, err := s.Driver.ExecuteQuery(ctx, driver.GetNodesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nodes: %w", err)
	}

	nodes := []model.Node{}
	for _, rec := range nodeResult.Records {
		id, _ := rec.Get("id")
		label, _ := rec.Get("label")
		rawProps, _ := rec.Get("props")

		idStr, ok := id.(string)
		if !ok || idStr == "" {
			continue
		}
		labelStr, _ := label.(string)

		props := map[string]interface{}{}
		if m, ok := rawProps.(map[string]interface{}); ok {
			for k, v := range m {
				if k == "id" || k == "label" {
					continue
				}
				props[k] = v
			}
		}

		nodes = append(nodes, model.Node{ID: idStr, Label: labelStr, Properties: props})
	}

	edgeResult, err := s.Driver.ExecuteQuery(ctx, driver.GetEdgesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch edges: %w", err)
	}

	edges := []model.Edge{}
	for _, rec := range edgeResult.Records {
		source, _ := rec.Get("source_id")
		target, _ := rec.Get("target_id")
		relType, _ := rec.Get("relationship_type")

		sourceStr, ok1 := source.(string)
		targetStr, ok2 := target.(string)
		if !ok1 || !ok2 {
			continue
		}
		relStr, _ := relType.(string)

		edges = append(edges, model.Edge{SourceID: sourceStr, TargetID: targetStr, RelationshipType: relStr})
	}

	return &model.Graph{Nodes: nodes, Edges: edges}, nil
}

// IsReachable reports whether the store currently answers a trivial query.
// It never returns an error; callers degrade instead.
func (s *Store) IsReachable(ctx context.Context) bool {
	result, err := s.Driver.ExecuteQuery(ctx, driver.PingQuery, nil)
	return err == nil && len(result.Records) > 0
}

// ShortestPath returns the hop-shortest undirected path between two nodes,
// bounded by maxHops, as ordered node ids plus the relationship types
// between consecutive nodes. A missing path is (nil, nil), not an error.
func (s *Store) ShortestPath(ctx context.Context, startID, endID string, maxHops int) (*model.Path, error) {
	query := fmt.Sprintf(driver.ShortestPathQueryTemplate, maxHops)
	params := map[string]interface{}{
		"start_id": startID,
		"end_id":   endID,
	}

	result, err := s.Driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, nil
	}

	nodeIDs := stringList(result.Records[0], "node_ids")
	relTypes := stringList(result.Records[0], "rel_types")
	if len(nodeIDs) == 0 {
		return nil, nil
	}

	return &model.Path{Nodes: nodeIDs, Relationships: relTypes}, nil
}

// NeighborsWithinHops returns, among candidateIDs, those reachable from
// startID within maxHops undirected hops, plus startID itself, truncated to
// the first 10 in store order.
func (s *Store) NeighborsWithinHops(ctx context.Context, startID string, candidateIDs []string, maxHops int) ([]string, error) {
	query := fmt.Sprintf(driver.NeighborsWithinHopsQueryTemplate, maxHops)
	params := map[string]interface{}{
		"start_id":      startID,
		"candidate_ids": candidateIDs,
	}

	result, err := s.Driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, nil
	}

	return stringList(result.Records[0], "node_ids"), nil
}

func stringList(rec *neo4j.Record, key string) []string {
	raw, ok := rec.Get(key)
	if !ok {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
