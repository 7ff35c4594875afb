package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/cartograph/internal/core/common"
	"github.com/agenthands/cartograph/internal/core/model"
	"github.com/agenthands/cartograph/internal/llm"
)

// The serialized context sent to the LLM is capped so a large graph does not
// blow the prompt budget.
const (
	maxContextNodes = 50
	maxContextEdges = 50
)

// Chatter answers questions about the current graph. The LLM sees a textual
// summary of the graph, not the store; its answer names the node ids it
// leaned on, which the path-finder later grounds in real topology.
type Chatter struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewChatter(llmClient llm.LLMClient, prompt string) *Chatter {
	return &Chatter{
		LLM:    llmClient,
		Prompt: prompt,
	}
}

// Ask poses the question against the serialized graph context and validates
// the LLM's payload. Unknown confidence values are demoted to LOW rather
// than rejected; the ids and queries slices are never nil.
func (c *Chatter) Ask(ctx context.Context, question, graphContext string) (*model.ChatAnswer, error) {
	prompt := fmt.Sprintf(c.Prompt, graphContext, question)

	response, err := c.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	answer, err := common.ParseJSON[model.ChatAnswer](response)
	if err != nil {
		return nil, fmt.Errorf("malformed chat payload: %w", err)
	}
	if answer.Answer == "" {
		return nil, fmt.Errorf("chat payload missing answer")
	}

	answer.Confidence = model.Confidence(strings.ToUpper(string(answer.Confidence)))
	if !answer.Confidence.Valid() {
		answer.Confidence = model.ConfidenceLow
	}
	if answer.RelevantNodeIDs == nil {
		answer.RelevantNodeIDs = []string{}
	}
	if answer.SuggestedQueries == nil {
		answer.SuggestedQueries = []string{}
	}

	return &answer, nil
}

// SummarizeGraph renders the graph as the plain-text context block the chat
// prompt embeds: counts, then up to 50 nodes with their properties, then up
// to 50 relationships.
func SummarizeGraph(g *model.Graph) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Graph has %d nodes and %d edges.\n\n", len(g.Nodes), len(g.Edges))

	b.WriteString("Nodes:\n")
	for i, n := range g.Nodes {
		if i >= maxContextNodes {
			break
		}
		fmt.Fprintf(&b, "- %s (ID: %s)\n", n.Label, n.ID)
		for k, v := range n.Properties {
			fmt.Fprintf(&b, "  %s: %v\n", k, v)
		}
	}

	b.WriteString("\nRelationships:\n")
	for i, e := range g.Edges {
		if i >= maxContextEdges {
			break
		}
		relType := e.RelationshipType
		if relType == "" {
			relType = "RELATED_TO"
		}
		fmt.Fprintf(&b, "- %s --[%s]--> %s\n", e.SourceID, relType, e.TargetID)
	}

	return b.String()
}
