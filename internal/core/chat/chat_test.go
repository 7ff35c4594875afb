package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/cartograph/internal/core/model"
)

type MockLLMClient struct {
	Response string
	Err      error
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func TestAsk(t *testing.T) {
	mockJSON := `{
		"answer": "Alice works at Acme.",
		"confidence": "HIGH",
		"relevant_node_ids": ["alice", "acme"],
		"suggested_queries": ["Who manages Alice?"]
	}`

	chatter := NewChatter(&MockLLMClient{Response: mockJSON}, "context: %s question: %s")

	answer, err := chatter.Ask(context.Background(), "Where does Alice work?", "graph context")

	assert.NoError(t, err)
	assert.Equal(t, "Alice works at Acme.", answer.Answer)
	assert.Equal(t, model.ConfidenceHigh, answer.Confidence)
	assert.Equal(t, []string{"alice", "acme"}, answer.RelevantNodeIDs)
	assert.Equal(t, []string{"Who manages Alice?"}, answer.SuggestedQueries)
}

func TestAskNormalizesConfidence(t *testing.T) {
	cases := map[string]model.Confidence{
		"high":    model.ConfidenceHigh,
		"Medium":  model.ConfidenceMedium,
		"":        model.ConfidenceLow,
		"UNCLEAR": model.ConfidenceLow,
		"LOW":     model.ConfidenceLow,
	}

	for raw, want := range cases {
		mockJSON := fmt.Sprintf(`{"answer": "x", "confidence": "%s"}`, raw)
		chatter := NewChatter(&MockLLMClient{Response: mockJSON}, "%s %s")

		answer, err := chatter.Ask(context.Background(), "q", "ctx")

		assert.NoError(t, err)
		assert.Equal(t, want, answer.Confidence, "confidence %q", raw)
		assert.NotNil(t, answer.RelevantNodeIDs)
		assert.NotNil(t, answer.SuggestedQueries)
	}
}

func TestAskLLMFailure(t *testing.T) {
	chatter := NewChatter(&MockLLMClient{Err: errors.New("timeout")}, "%s %s")

	answer, err := chatter.Ask(context.Background(), "q", "ctx")

	assert.Error(t, err)
	assert.Nil(t, answer)
}

func TestAskMissingAnswerRejected(t *testing.T) {
	chatter := NewChatter(&MockLLMClient{Response: `{"confidence": "HIGH"}`}, "%s %s")

	answer, err := chatter.Ask(context.Background(), "q", "ctx")

	assert.Error(t, err)
	assert.Nil(t, answer)
}

func TestSummarizeGraph(t *testing.T) {
	g := &model.Graph{
		Nodes: []model.Node{
			{ID: "alice", Label: "Alice", Properties: map[string]interface{}{"role": "engineer"}},
			{ID: "acme", Label: "Acme Corp"},
		},
		Edges: []model.Edge{
			{SourceID: "alice", TargetID: "acme", RelationshipType: "WORKS_AT"},
			{SourceID: "alice", TargetID: "acme"},
		},
	}

	summary := SummarizeGraph(g)

	assert.Contains(t, summary, "Graph has 2 nodes and 2 edges.")
	assert.Contains(t, summary, "- Alice (ID: alice)")
	assert.Contains(t, summary, "  role: engineer")
	assert.Contains(t, summary, "- alice --[WORKS_AT]--> acme")
	// Untyped edges render with the default label.
	assert.Contains(t, summary, "- alice --[RELATED_TO]--> acme")
}

func TestSummarizeGraphCapsOutput(t *testing.T) {
	g := &model.Graph{}
	for i := 0; i < 80; i++ {
		id := fmt.Sprintf("n%d", i)
		g.Nodes = append(g.Nodes, model.Node{ID: id, Label: id})
	}
	for i := 0; i < 79; i++ {
		g.Edges = append(g.Edges, model.Edge{
			SourceID:         fmt.Sprintf("n%d", i),
			TargetID:         fmt.Sprintf("n%d", i+1),
			RelationshipType: "NEXT",
		})
	}

	summary := SummarizeGraph(g)

	assert.Equal(t, 50, strings.Count(summary, "(ID: n"))
	assert.Equal(t, 50, strings.Count(summary, "--[NEXT]-->"))
	assert.Contains(t, summary, "Graph has 80 nodes and 79 edges.")
}
