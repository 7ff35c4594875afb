package model

// Edge is a directed relationship between two nodes of the same graph.
// RelationshipType is free-form LLM output; the store sanitizes it into a
// Cypher-safe identifier before persisting.
type Edge struct {
	SourceID         string `json:"source_id"`
	TargetID         string `json:"target_id"`
	RelationshipType string `json:"relationship_type"`
}
