package lang

import "sync"

// Cache memoizes parsed ASTs by formula text, avoiding repeated lexing
// and parsing when the same formula is evaluated across many rows or
// many analytics share a rule definition.
type Cache struct {
	mu    sync.RWMutex
	trees map[string]Node
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{trees: make(map[string]Node)}
}

// Parse returns the cached AST for formula, parsing and storing it on a
// first encounter.
func (c *Cache) Parse(formula string) (Node, error) {
	c.mu.RLock()
	tree, ok := c.trees[formula]
	c.mu.RUnlock()
	if ok {
		return tree, nil
	}

	tree, err := Parse(formula)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.trees[formula] = tree
	c.mu.Unlock()
	return tree, nil
}
