package schemaform

import (
	"strings"

	"github.com/jalvaro-lks/industry-core-hub-sub004/fieldpath"
)

// FormField is the flat renderer-facing projection of one tree node. It is
// derived from the tree by Flatten, never built independently, so both views
// agree on identifiers by construction.
type FormField struct {
	// ID equals the tree node's ID, [item] markers included.
	ID string
	// SchemaPath is the dotted path with every [item] marker dropped.
	SchemaPath string
	Key        string
	Label      string
	Section    string
	NodeType   NodeType
	Type       PrimitiveType
	Required   bool
	Depth      int
	// ArrayAncestors lists the dotted paths of every array ancestor,
	// outermost first; non-empty exactly when the field sits inside a list.
	ArrayAncestors []string
	URN            string
}

// Flatten projects the tree into a flat field list in depth-first document
// order, one entry per node.
func Flatten(t *Tree) []FormField {
	var out []FormField
	if t == nil {
		return out
	}
	t.Walk(func(n *SchemaNode) bool {
		out = append(out, FormField{
			ID:             n.ID,
			SchemaPath:     fieldpath.Dotted(n.ID),
			Key:            n.Key,
			Label:          n.Label,
			Section:        n.Section,
			NodeType:       n.NodeType,
			Type:           n.PrimitiveType,
			Required:       n.Required,
			Depth:          n.Depth,
			ArrayAncestors: arrayAncestors(n.ID),
			URN:            n.URN,
		})
		return true
	})
	return out
}

// arrayAncestors extracts the dotted path of every [item] hop in an
// identifier: "materials[item].content[item].name" yields
// ["materials", "materials.content"].
func arrayAncestors(id string) []string {
	var out []string
	offset := 0
	for {
		i := strings.Index(id[offset:], "[item]")
		if i < 0 {
			return out
		}
		out = append(out, fieldpath.Dotted(id[:offset+i]))
		offset += i + len("[item]")
	}
}
