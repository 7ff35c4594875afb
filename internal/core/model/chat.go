package model

// Confidence is the LLM's self-reported reliability for a chat answer.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Valid reports whether c is one of the three known levels.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// ChatAnswer is the chat gateway's parsed response. RelevantNodeIDs are the
// node ids the LLM believes support the answer; they may reference nodes
// that do not exist in the current graph.
type ChatAnswer struct {
	Answer           string     `json:"answer"`
	Confidence       Confidence `json:"confidence"`
	RelevantNodeIDs  []string   `json:"relevant_node_ids"`
	SuggestedQueries []string   `json:"suggested_queries"`
}
