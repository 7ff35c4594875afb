package model

// Path is the explanatory subgraph attached to a chat answer. When
// Relationships is non-empty it is an ordered walk: Relationships[i] joins
// Nodes[i] and Nodes[i+1]. When empty, Nodes is just a ranked list of ids
// with no connecting structure. A nil *Path means nothing could be shown.
type Path struct {
	Nodes         []string `json:"nodes"`
	Relationships []string `json:"relationships,omitempty"`
}
