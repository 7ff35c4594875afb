package extraction

import (
	"context"
	"fmt"

	"github.com/agenthands/cartograph/internal/core/common"
	"github.com/agenthands/cartograph/internal/core/model"
	"github.com/agenthands/cartograph/internal/llm"
)

// Extractor turns cleaned text into a typed graph by prompting the LLM and
// validating its payload at the boundary. Extraction failure is fatal to the
// request; there is no degraded mode here.
type Extractor struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewExtractor(llmClient llm.LLMClient, prompt string) *Extractor {
	return &Extractor{
		LLM:    llmClient,
		Prompt: prompt,
	}
}

// ExtractGraph asks the LLM for a knowledge graph over the given text.
// Nodes with empty ids are dropped, duplicate ids merge last-write-wins, and
// edges referencing unknown nodes are dropped. An empty result is an
// upstream error, not an empty graph.
func (e *Extractor) ExtractGraph(ctx context.Context, text string) (*model.Graph, error) {
	prompt := fmt.Sprintf(e.Prompt, text)

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate graph: %w", err)
	}

	graph, err := common.ParseJSON[model.Graph](response)
	if err != nil {
		return nil, fmt.Errorf("malformed extraction payload: %w", err)
	}

	cleaned := validate(&graph)
	if len(cleaned.Nodes) == 0 {
		return nil, fmt.Errorf("extraction produced no usable nodes")
	}

	return cleaned, nil
}

func validate(g *model.Graph) *model.Graph {
	cleaned := &model.Graph{}

	index := map[string]int{}
	for _, n := range g.Nodes {
		if n.ID == "" {
			continue
		}
		if i, ok := index[n.ID]; ok {
			cleaned.Nodes[i] = n
			continue
		}
		index[n.ID] = len(cleaned.Nodes)
		cleaned.Nodes = append(cleaned.Nodes, n)
	}

	for _, e := range g.Edges {
		if _, ok := index[e.SourceID]; !ok {
			continue
		}
		if _, ok := index[e.TargetID]; !ok {
			continue
		}
		cleaned.Edges = append(cleaned.Edges, e)
	}

	return cleaned
}
