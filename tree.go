package schemaform

import "fmt"

// Tree is the built form model: top-level nodes in document order plus a
// whole-tree identifier index.
type Tree struct {
	roots *NodeMap
	byID  map[string]*SchemaNode
}

func newTree() *Tree {
	return &Tree{roots: NewNodeMap(), byID: map[string]*SchemaNode{}}
}

func (t *Tree) addRoot(key string, n *SchemaNode) {
	t.roots.Set(key, n)
	t.index(n)
}

func (t *Tree) index(n *SchemaNode) {
	if n == nil {
		return
	}
	t.byID[n.ID] = n
	for _, c := range n.Properties.Nodes() {
		t.index(c)
	}
	t.index(n.ItemSchema)
}

// Roots returns the top-level nodes in document order.
func (t *Tree) Roots() *NodeMap {
	if t == nil {
		return nil
	}
	return t.roots
}

// Len reports the total number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byID)
}

// Lookup resolves a node by its identifier, e.g. "materials[item].name".
func (t *Tree) Lookup(id string) (*SchemaNode, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.byID[id]
	return n, ok
}

// AttachRule registers a custom predicate on the node with the given
// identifier. This is the one sanctioned post-build mutation: cross-field
// rules are code, not schema, so they cannot come in through Build.
func (t *Tree) AttachRule(id string, r CustomRule) error {
	n, ok := t.Lookup(id)
	if !ok {
		return fmt.Errorf("schemaform: no node %q to attach rule %q to", id, r.Name)
	}
	if n.Rules == nil {
		n.Rules = &ValidationRules{}
	}
	n.Rules.Custom = append(n.Rules.Custom, r)
	return nil
}

// Walk visits every node depth-first in document order. Returning false from
// fn stops the walk.
func (t *Tree) Walk(fn func(n *SchemaNode) bool) {
	if t == nil {
		return
	}
	for _, r := range t.roots.Nodes() {
		if !walkNode(r, fn) {
			return
		}
	}
}

func walkNode(n *SchemaNode, fn func(n *SchemaNode) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Properties.Nodes() {
		if !walkNode(c, fn) {
			return false
		}
	}
	return walkNode(n.ItemSchema, fn)
}
