package navigation

import "sync/atomic"

// Holder publishes the current Graph generation to concurrent readers.
// Readers that already loaded a generation keep using it until they call
// Load again; a reload never touches a published Graph.
type Holder struct {
	current atomic.Pointer[Graph]
}

// NewHolder returns a Holder publishing g.
func NewHolder(g *Graph) *Holder {
	h := &Holder{}
	h.current.Store(g)
	return h
}

// Load returns the current generation, or nil if none was published.
func (h *Holder) Load() *Graph {
	return h.current.Load()
}

// Swap publishes g and returns the previous generation.
func (h *Holder) Swap(g *Graph) *Graph {
	return h.current.Swap(g)
}
