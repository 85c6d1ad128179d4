package model

import (
	"encoding/json"
	"strconv"
)

// Well-known keys of field mappings and block nodes.
const (
	KeyID              = "id"
	KeyUID             = "uid"
	KeyName            = "name"
	KeyTargetFieldUID  = "contentstackFieldUid"
	KeyTargetUID       = "contentstackUid"
	KeySourceField     = "otherCmsField"
	KeySourceType      = "otherCmsType"
	KeyTargetField     = "contentstackField"
	KeyTargetType      = "contentstackFieldType"
	KeyBackupFieldType = "backupFieldType"
	KeyBackupFieldUID  = "backupFieldUid"
	KeyIsDeleted       = "isDeleted"
	KeyAdvanced        = "advanced"
	KeyBlocks          = "blocks"
	KeySchema          = "schema"
)

// Node is one object of a field-mapping tree.
type Node map[string]any

// FieldMapping is one field definition of a content model.
type FieldMapping = Node

// BlockNode is a repeatable structured sub-component nested under blocks or schema.
type BlockNode = Node

// Shape describes how a tree-bearing property is populated.
type Shape int

const (
	// ShapeAbsent - the property is missing, null or not a container.
	ShapeAbsent Shape = iota
	// ShapeObject - the property holds a single nested node.
	ShapeObject
	// ShapeList - the property holds an ordered sequence of nodes.
	ShapeList
)

// ShapeOf reports the shape of a property value.
func ShapeOf(v any) Shape {
	switch v.(type) {
	case Node, map[string]any:
		return ShapeObject
	case []any, []Node, []map[string]any:
		return ShapeList
	default:
		return ShapeAbsent
	}
}

// AsNode returns v as a Node when it is a JSON object.
func AsNode(v any) (Node, bool) {
	switch n := v.(type) {
	case Node:
		return n, n != nil
	case map[string]any:
		return Node(n), n != nil
	default:
		return nil, false
	}
}

// AsNodes returns the object elements of a list value. Elements that are not
// objects are dropped and counted in skipped. ok is false when v is not a list.
func AsNodes(v any) (nodes []Node, skipped int, ok bool) {
	switch list := v.(type) {
	case []any:
		nodes = make([]Node, 0, len(list))

		for _, item := range list {
			if n, isNode := AsNode(item); isNode {
				nodes = append(nodes, n)
			} else {
				skipped++
			}
		}

		return nodes, skipped, true

	case []Node:
		nodes = make([]Node, 0, len(list))

		for _, n := range list {
			if n == nil {
				skipped++
				continue
			}

			nodes = append(nodes, n)
		}

		return nodes, skipped, true

	case []map[string]any:
		nodes = make([]Node, 0, len(list))

		for _, m := range list {
			if m == nil {
				skipped++
				continue
			}

			nodes = append(nodes, Node(m))
		}

		return nodes, skipped, true

	default:
		return nil, 0, false
	}
}

// NodeList converts nodes to the canonical list form stored inside a tree.
func NodeList(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}

	return out
}

// Str returns the value of key rendered as a string. Numbers are formatted
// without exponent; every other non-string value yields "".
func (n Node) Str(key string) string {
	switch v := n[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// Has reports whether key is present with a non-null value.
func (n Node) Has(key string) bool {
	v, ok := n[key]
	return ok && v != nil
}

// UID returns the plain uid.
func (n Node) UID() string {
	return n.Str(KeyUID)
}

// ID returns the source id.
func (n Node) ID() string {
	return n.Str(KeyID)
}

// TargetUID returns the target-system uid, preferring the field uid key.
func (n Node) TargetUID() string {
	if v := n.Str(KeyTargetFieldUID); v != "" {
		return v
	}

	return n.Str(KeyTargetUID)
}

// Clone returns a deep copy of n in canonical form.
func (n Node) Clone() Node {
	if n == nil {
		return nil
	}

	out := make(Node, len(n))
	for k, v := range n {
		out[k] = CloneValue(v)
	}

	return out
}

// CloneValue deep-copies a JSON value. Objects become Node and lists become
// []any; scalars are returned as is.
func CloneValue(v any) any {
	switch val := v.(type) {
	case Node:
		return val.Clone()
	case map[string]any:
		return Node(val).Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}

		return out
	case []Node:
		out := make([]any, len(val))
		for i, item := range val {
			if item == nil {
				continue
			}

			out[i] = item.Clone()
		}

		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			if item == nil {
				continue
			}

			out[i] = Node(item).Clone()
		}

		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}

		return out
	default:
		return v
	}
}
