package schemaform

// NodeType identifies the structural class of a SchemaNode.
type NodeType int

const (
	NodePrimitive NodeType = iota
	NodeObject
	NodeArray
)

// String returns the JSON-ish name of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeObject:
		return "object"
	case NodeArray:
		return "array"
	default:
		return "primitive"
	}
}

// PrimitiveType is the renderer-facing widget class of a primitive node. It
// refines the raw JSON type with format and enum information so a form layer
// can pick an input control without re-reading the schema.
type PrimitiveType string

const (
	TypeString   PrimitiveType = "string"
	TypeNumber   PrimitiveType = "number"
	TypeInteger  PrimitiveType = "integer"
	TypeBoolean  PrimitiveType = "boolean"
	TypeCheckbox PrimitiveType = "checkbox"
	TypeDate     PrimitiveType = "date"
	TypeDateTime PrimitiveType = "datetime"
	TypeTime     PrimitiveType = "time"
	TypeEmail    PrimitiveType = "email"
	TypeURL      PrimitiveType = "url"
	TypePassword PrimitiveType = "password"
	TypeTextarea PrimitiveType = "textarea"
	TypeEnum     PrimitiveType = "enum"
	TypeRadio    PrimitiveType = "radio"
)

// ArrayConstraints is the renderer-facing view of array cardinality rules.
// The same bounds also appear in the node's ValidationRules; this copy exists
// so list widgets can size themselves without digging through rules.
type ArrayConstraints struct {
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
}

// SchemaNode is one field in the built form tree. Identifiers are a pure
// function of schema position: a property child appends ".key" to its parent
// identifier and an array item appends the literal "[item]" marker, so
// rebuilding the same document always yields the same IDs.
type SchemaNode struct {
	// ID is the stable tree identifier, e.g. "materials[item].concentration".
	ID string
	// Key is the property name within the parent ("item" for array items).
	Key string
	// ParentID is empty for top-level nodes.
	ParentID string

	NodeType      NodeType
	PrimitiveType PrimitiveType // set only for NodePrimitive

	Label       string
	Description string
	HelpText    string
	Placeholder string
	// URN carries the x-samm-aspect-model-urn annotation verbatim.
	URN string

	Rules *ValidationRules // nil when the schema declares no constraints

	// Properties holds object children in document order.
	Properties *NodeMap
	// ItemSchema describes array elements; nil for open arrays.
	ItemSchema       *SchemaNode
	ArrayConstraints *ArrayConstraints

	Depth      int
	Order      int
	Section    string
	IsTopLevel bool
	Required   bool
	// CollapsedByDefault marks nested containers renderers should fold.
	CollapsedByDefault bool
}

// Property returns the named object child, nil when absent.
func (n *SchemaNode) Property(key string) *SchemaNode {
	if n == nil || n.Properties == nil {
		return nil
	}
	c, _ := n.Properties.Get(key)
	return c
}

// IsContainer reports whether the node has structural children.
func (n *SchemaNode) IsContainer() bool {
	return n.NodeType == NodeObject || n.NodeType == NodeArray
}

// NodeMap is an insertion-ordered map of child nodes. JSON property order is
// part of the form contract, so plain map iteration is not an option here.
type NodeMap struct {
	keys []string
	m    map[string]*SchemaNode
}

// NewNodeMap returns an empty ordered node map.
func NewNodeMap() *NodeMap {
	return &NodeMap{m: map[string]*SchemaNode{}}
}

// Set inserts or replaces a child. Replacing keeps the original position.
func (nm *NodeMap) Set(key string, n *SchemaNode) {
	if _, exists := nm.m[key]; !exists {
		nm.keys = append(nm.keys, key)
	}
	nm.m[key] = n
}

// Get returns the child for key.
func (nm *NodeMap) Get(key string) (*SchemaNode, bool) {
	if nm == nil {
		return nil, false
	}
	n, ok := nm.m[key]
	return n, ok
}

// Len returns the number of children.
func (nm *NodeMap) Len() int {
	if nm == nil {
		return 0
	}
	return len(nm.keys)
}

// Keys returns the child keys in insertion order.
func (nm *NodeMap) Keys() []string {
	if nm == nil {
		return nil
	}
	return append([]string(nil), nm.keys...)
}

// Nodes returns the children in insertion order.
func (nm *NodeMap) Nodes() []*SchemaNode {
	if nm == nil {
		return nil
	}
	out := make([]*SchemaNode, 0, len(nm.keys))
	for _, k := range nm.keys {
		out = append(out, nm.m[k])
	}
	return out
}
