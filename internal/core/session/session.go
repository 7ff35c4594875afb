package session

import (
	"sync"

	"github.com/agenthands/cartograph/internal/core/model"
)

// Context is the single in-memory slot holding the most recently extracted
// or fetched graph. Requests run in parallel, so the slot is guarded;
// last writer wins.
type Context struct {
	mu    sync.RWMutex
	graph *model.Graph
}

func New() *Context {
	return &Context{}
}

// Set replaces the current graph.
func (c *Context) Set(g *model.Graph) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.graph = g
}

// Get returns the current graph, or nil when nothing has been extracted yet.
// Callers read once at request start and work off that snapshot.
func (c *Context) Get() *model.Graph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.graph
}
