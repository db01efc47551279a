package server

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"egoroff.spb.ru/pkg/navigation"
)

type cachedNavigation struct {
	graph *navigation.Graph
	nav   Navigation
}

// navigationCache remembers rendered navigation payloads by URI.
// Entries carry the graph generation they were computed from, so an entry
// written by a request that raced a reload is never served for the new graph.
type navigationCache struct {
	entries *lru.Cache[string, cachedNavigation]
}

// newNavigationCache returns a cache holding up to size entries.
// A size of 0 disables caching.
func newNavigationCache(size int) (*navigationCache, error) {
	if size <= 0 {
		return &navigationCache{}, nil
	}
	entries, err := lru.New[string, cachedNavigation](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create navigation cache: %w", err)
	}
	return &navigationCache{entries: entries}, nil
}

func (c *navigationCache) Get(g *navigation.Graph, uri string) (Navigation, bool) {
	if c.entries == nil {
		return Navigation{}, false
	}
	e, ok := c.entries.Get(uri)
	if !ok || e.graph != g {
		return Navigation{}, false
	}
	return e.nav, true
}

func (c *navigationCache) Add(g *navigation.Graph, uri string, nav Navigation) {
	if c.entries == nil {
		return
	}
	c.entries.Add(uri, cachedNavigation{graph: g, nav: nav})
}

func (c *navigationCache) Purge() {
	if c.entries == nil {
		return
	}
	c.entries.Purge()
}

func (c *navigationCache) Len() int {
	if c.entries == nil {
		return 0
	}
	return c.entries.Len()
}
