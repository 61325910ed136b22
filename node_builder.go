package schemaform

import (
	"fmt"
	"strings"
)

// NodeBuilder assembles a SchemaNode step by step. The zero value is not
// usable; start with NewNode.
type NodeBuilder struct {
	n SchemaNode
}

// NewNode returns a builder for a primitive node; override the structural
// class with Object/Array.
func NewNode(id string) *NodeBuilder {
	b := &NodeBuilder{}
	b.n.ID = id
	b.n.NodeType = NodePrimitive
	return b
}

// Key sets the property name within the parent.
func (b *NodeBuilder) Key(key string) *NodeBuilder { b.n.Key = key; return b }

// Parent sets the parent identifier.
func (b *NodeBuilder) Parent(id string) *NodeBuilder { b.n.ParentID = id; return b }

// Label sets the human-readable field label.
func (b *NodeBuilder) Label(label string) *NodeBuilder { b.n.Label = label; return b }

// Description sets the schema description verbatim.
func (b *NodeBuilder) Description(d string) *NodeBuilder { b.n.Description = d; return b }

// HelpText sets the renderer hint shown next to the input.
func (b *NodeBuilder) HelpText(h string) *NodeBuilder { b.n.HelpText = h; return b }

// Placeholder sets the input placeholder.
func (b *NodeBuilder) Placeholder(p string) *NodeBuilder { b.n.Placeholder = p; return b }

// URN sets the aspect-model URN annotation.
func (b *NodeBuilder) URN(urn string) *NodeBuilder { b.n.URN = urn; return b }

// Primitive marks the node as a leaf of the given widget class.
func (b *NodeBuilder) Primitive(pt PrimitiveType) *NodeBuilder {
	b.n.NodeType = NodePrimitive
	b.n.PrimitiveType = pt
	return b
}

// Object marks the node as an object container.
func (b *NodeBuilder) Object() *NodeBuilder {
	b.n.NodeType = NodeObject
	b.n.PrimitiveType = ""
	if b.n.Properties == nil {
		b.n.Properties = NewNodeMap()
	}
	return b
}

// Array marks the node as an array container.
func (b *NodeBuilder) Array() *NodeBuilder {
	b.n.NodeType = NodeArray
	b.n.PrimitiveType = ""
	return b
}

// Property appends an object child. Implies Object.
func (b *NodeBuilder) Property(key string, child *SchemaNode) *NodeBuilder {
	b.Object()
	b.n.Properties.Set(key, child)
	return b
}

// Item sets the array element schema. Implies Array.
func (b *NodeBuilder) Item(item *SchemaNode) *NodeBuilder {
	b.Array()
	b.n.ItemSchema = item
	return b
}

// Constraints sets the renderer-facing array bounds. Implies Array.
func (b *NodeBuilder) Constraints(c *ArrayConstraints) *NodeBuilder {
	b.Array()
	b.n.ArrayConstraints = c
	return b
}

// Rules attaches the node's validation rules.
func (b *NodeBuilder) Rules(r *ValidationRules) *NodeBuilder { b.n.Rules = r; return b }

// Required marks the node as mandatory in its parent.
func (b *NodeBuilder) Required(req bool) *NodeBuilder { b.n.Required = req; return b }

// Depth records the nesting depth (0 for top-level nodes).
func (b *NodeBuilder) Depth(d int) *NodeBuilder { b.n.Depth = d; return b }

// Order records the position among siblings.
func (b *NodeBuilder) Order(o int) *NodeBuilder { b.n.Order = o; return b }

// Section assigns the top-level grouping label.
func (b *NodeBuilder) Section(s string) *NodeBuilder { b.n.Section = s; return b }

// TopLevel marks the node as a direct child of the schema root.
func (b *NodeBuilder) TopLevel(v bool) *NodeBuilder { b.n.IsTopLevel = v; return b }

// Collapsed marks the container folded by default.
func (b *NodeBuilder) Collapsed(v bool) *NodeBuilder { b.n.CollapsedByDefault = v; return b }

// Build validates the builder and returns the node. ID and Label are the two
// fields every renderer and error index depends on, so both are mandatory.
func (b *NodeBuilder) Build() (*SchemaNode, error) {
	if b.n.ID == "" {
		return nil, fmt.Errorf("schemaform: node without id")
	}
	if b.n.Label == "" {
		return nil, fmt.Errorf("schemaform: node %q without label", b.n.ID)
	}
	if b.n.Key == "" {
		b.n.Key = lastKeySegment(b.n.ID)
	}
	if b.n.NodeType == NodeObject && b.n.Properties == nil {
		b.n.Properties = NewNodeMap()
	}
	n := b.n
	return &n, nil
}

// MustBuild is like Build but panics on error. Missing id or label is
// programmer misuse, not input failure.
func (b *NodeBuilder) MustBuild() *SchemaNode {
	n, err := b.Build()
	if err != nil {
		panic(err)
	}
	return n
}

// lastKeySegment extracts the trailing property name of an identifier,
// treating a trailing [item] marker as the key "item".
func lastKeySegment(id string) string {
	if id == "" {
		return ""
	}
	last := id
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		last = id[i+1:]
	}
	if i := len(last) - 1; i >= 0 && last[i] == ']' {
		if j := strings.LastIndexByte(last, '['); j >= 0 {
			if last[j+1:i] == "item" {
				return "item"
			}
			last = last[:j]
		}
	}
	return last
}
