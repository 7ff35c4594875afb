package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cartograph/internal/core/model"
	"github.com/agenthands/cartograph/internal/driver"
)

func sampleGraph() *model.Graph {
	return &model.Graph{
		Nodes: []model.Node{
			{ID: "alice", Label: "Alice", Properties: map[string]interface{}{"role": "engineer"}},
			{ID: "acme", Label: "Acme Corp"},
		},
		Edges: []model.Edge{
			{SourceID: "alice", TargetID: "acme", RelationshipType: "works at"},
		},
	}
}

func TestUpsertGraph(t *testing.T) {
	mock := &MockDriver{}
	s := New(mock)

	err := s.UpsertGraph(context.Background(), sampleGraph())

	require.NoError(t, err)
	require.Len(t, mock.Queries, 3)

	assert.Equal(t, driver.MergeNodeQuery, mock.Queries[0])
	assert.Equal(t, "alice", mock.Params[0]["id"])
	assert.Equal(t, "Alice", mock.Params[0]["label"])
	assert.Equal(t, map[string]interface{}{"role": "engineer"}, mock.Params[0]["props"])

	// Nodes without properties still send a props map.
	assert.Equal(t, map[string]interface{}{}, mock.Params[1]["props"])

	// The sanitized type is spliced into the edge query.
	assert.Contains(t, mock.Queries[2], "[:WORKS_AT]")
	assert.Equal(t, "alice", mock.Params[2]["source_id"])
	assert.Equal(t, "acme", mock.Params[2]["target_id"])
}

func TestUpsertGraphIdempotent(t *testing.T) {
	mock := &MockDriver{}
	s := New(mock)

	g := sampleGraph()
	require.NoError(t, s.UpsertGraph(context.Background(), g))
	require.NoError(t, s.UpsertGraph(context.Background(), g))

	// Same MERGE statements with the same parameters both times; the store's
	// merge-on-identity semantics make the second application a no-op.
	require.Len(t, mock.Queries, 6)
	assert.Equal(t, mock.Queries[:3], mock.Queries[3:])
	assert.Equal(t, mock.Params[:3], mock.Params[3:])
}

func TestUpsertGraphEmptyRelTypeUsesDefault(t *testing.T) {
	mock := &MockDriver{}
	s := New(mock)

	g := &model.Graph{
		Nodes: []model.Node{{ID: "a"}, {ID: "b"}},
		Edges: []model.Edge{{SourceID: "a", TargetID: "b", RelationshipType: "!!!"}},
	}

	require.NoError(t, s.UpsertGraph(context.Background(), g))
	assert.Contains(t, mock.Queries[2], "[:RELATED_TO]")
}

func TestUpsertGraphDriverError(t *testing.T) {
	mock := &MockDriver{Err: errors.New("connection refused")}
	s := New(mock)

	err := s.UpsertGraph(context.Background(), sampleGraph())

	assert.Error(t, err)
}

func TestFetchGraph(t *testing.T) {
	nodeResult := neo4j.EagerResult{Records: []*neo4j.Record{
		record(
			[]string{"id", "label", "props"},
			[]interface{}{"alice", "Alice", map[string]interface{}{
				"id":    "alice",
				"label": "Alice",
				"role":  "engineer",
			}},
		),
		record(
			[]string{"id", "label", "props"},
			[]interface{}{"acme", "Acme Corp", map[string]interface{}{
				"id":    "acme",
				"label": "Acme Corp",
			}},
		),
	}}
	edgeResult := singleRecordResult(
		[]string{"source_id", "target_id", "relationship_type"},
		[]interface{}{"alice", "acme", "WORKS_AT"},
	)

	mock := &MockDriver{ResultQueue: []neo4j.EagerResult{nodeResult, edgeResult}}
	s := New(mock)

	g, err := s.FetchGraph(context.Background())

	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "alice", g.Nodes[0].ID)
	assert.Equal(t, "Alice", g.Nodes[0].Label)
	// id and label must not leak into the property map.
	assert.Equal(t, map[string]interface{}{"role": "engineer"}, g.Nodes[0].Properties)
	assert.Empty(t, g.Nodes[1].Properties)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, model.Edge{SourceID: "alice", TargetID: "acme", RelationshipType: "WORKS_AT"}, g.Edges[0])
}

func TestFetchGraphDriverError(t *testing.T) {
	mock := &MockDriver{Err: errors.New("boom")}
	s := New(mock)

	g, err := s.FetchGraph(context.Background())

	assert.Error(t, err)
	assert.Nil(t, g)
}

func TestIsReachable(t *testing.T) {
	up := &MockDriver{ResultQueue: []neo4j.EagerResult{
		singleRecordResult([]string{"ok"}, []interface{}{int64(1)}),
	}}
	assert.True(t, New(up).IsReachable(context.Background()))

	down := &MockDriver{Err: errors.New("no route to host")}
	assert.False(t, New(down).IsReachable(context.Background()))
}

func TestShortestPath(t *testing.T) {
	mock := &MockDriver{ResultQueue: []neo4j.EagerResult{
		singleRecordResult(
			[]string{"node_ids", "rel_types"},
			[]interface{}{
				[]interface{}{"A", "B", "C"},
				[]interface{}{"KNOWS", "WORKS_AT"},
			},
		),
	}}
	s := New(mock)

	path, err := s.ShortestPath(context.Background(), "A", "C", 3)

	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, []string{"A", "B", "C"}, path.Nodes)
	assert.Equal(t, []string{"KNOWS", "WORKS_AT"}, path.Relationships)

	// The hop bound is spliced into the pattern.
	assert.Contains(t, mock.Queries[0], "[*..3]")
	assert.Equal(t, "A", mock.Params[0]["start_id"])
	assert.Equal(t, "C", mock.Params[0]["end_id"])
}

func TestShortestPathNoPath(t *testing.T) {
	mock := &MockDriver{}
	s := New(mock)

	path, err := s.ShortestPath(context.Background(), "A", "Z", 3)

	assert.NoError(t, err)
	assert.Nil(t, path)
}

func TestNeighborsWithinHops(t *testing.T) {
	mock := &MockDriver{ResultQueue: []neo4j.EagerResult{
		singleRecordResult(
			[]string{"node_ids"},
			[]interface{}{[]interface{}{"b", "c", "a"}},
		),
	}}
	s := New(mock)

	ids, err := s.NeighborsWithinHops(context.Background(), "a", []string{"b", "c", "d"}, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, ids)
	assert.Contains(t, mock.Queries[0], "[*..2]")
	assert.Equal(t, []string{"b", "c", "d"}, mock.Params[0]["candidate_ids"])
}

func TestNeighborsWithinHopsEmpty(t *testing.T) {
	mock := &MockDriver{}
	s := New(mock)

	ids, err := s.NeighborsWithinHops(context.Background(), "a", []string{"b"}, 2)

	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRelTypesNeverDoubleNorDangle(t *testing.T) {
	// Every sanitized type embedded in a query must match the safe class.
	mock := &MockDriver{}
	s := New(mock)

	g := &model.Graph{
		Nodes: []model.Node{{ID: "a"}, {ID: "b"}},
		Edges: []model.Edge{
			{SourceID: "a", TargetID: "b", RelationshipType: "  spaced  out  "},
			{SourceID: "a", TargetID: "b", RelationshipType: "emoji 🎉 type"},
		},
	}

	require.NoError(t, s.UpsertGraph(context.Background(), g))
	assert.Contains(t, mock.Queries[2], "[:SPACED_OUT]")
	assert.Contains(t, mock.Queries[3], "[:EMOJI_TYPE]")
	for _, q := range mock.Queries[2:] {
		assert.False(t, strings.Contains(q, "[:_") || strings.Contains(q, "__"))
	}
}
