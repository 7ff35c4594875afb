package model

// Node is a single extracted entity. The ID is assigned by the extraction
// gateway and is the stable merge key in the store; Label is the
// human-readable name or type.
type Node struct {
	ID         string                 `json:"id"`
	Label      string                 `json:"label"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}
