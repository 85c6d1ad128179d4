package merge

import (
	"fmt"
	"slices"

	"content-migrator/internal/common"
	"content-migrator/internal/diagnostic"
	"content-migrator/internal/model"
	"content-migrator/internal/signature"
)

// MergeSiblings deduplicates one ordered sibling list. It returns one node per
// normalized identity key in first-seen order; members sharing a key are merged.
func (m *Merger) MergeSiblings(nodes []model.BlockNode) []model.BlockNode {
	return m.mergeSiblings(nodes, "", 0)
}

func (m *Merger) mergeSiblings(nodes []model.Node, path string, depth int) []model.Node {
	nodes = slices.DeleteFunc(slices.Clone(nodes), func(n model.Node) bool { return n == nil })

	if depth > m.maxDepth {
		m.warn(diagnostic.CodeDepthLimit,
			fmt.Sprintf("nesting deeper than %d levels copied without merging", m.maxDepth), path)

		out := make([]model.Node, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, n.Clone())
		}

		return out
	}

	// Record every key before grouping so the discovered order follows
	// document order across the whole list.
	for _, n := range nodes {
		m.tracker.Record(m.nodeKey(n))
	}

	order, groups := common.GroupOrdered(nodes, m.nodeKey)

	out := make([]model.Node, 0, len(order))

	for _, key := range order {
		members := groups[key]
		nodePath := joinPath(path, key)

		if common.IsMultiple(members) {
			out = append(out, m.mergeGroup(members, nodePath, depth))
		} else {
			out = append(out, m.mergeSingle(members[0], nodePath, depth))
		}
	}

	return out
}

// mergeSingle copies a node that has no siblings sharing its key, merging its
// nested lists. A schema object is copied as is.
func (m *Merger) mergeSingle(n model.Node, path string, depth int) model.Node {
	out := n.Clone()

	for _, key := range []string{model.KeyBlocks, model.KeySchema} {
		childPath := joinPath(path, key)

		children, ok := m.nodeList(n, key, childPath)
		if !ok {
			continue
		}

		out[key] = model.NodeList(m.mergeSiblings(children, childPath, depth+1))
	}

	return out
}

// mergeGroup folds members sharing one identity key into the first member.
// Nested blocks and schema lists are pooled across members, deduplicated by
// structural signature, sorted by discovered type order and merged again.
func (m *Merger) mergeGroup(members []model.Node, path string, depth int) model.Node {
	out := members[0].Clone()

	blocksPath := joinPath(path, model.KeyBlocks)
	if pooled, ok := m.pool(members, model.KeyBlocks, blocksPath); ok {
		out[model.KeyBlocks] = model.NodeList(m.mergeSiblings(pooled, blocksPath, depth+1))
	}

	schemaPath := joinPath(path, model.KeySchema)

	for _, member := range members {
		switch model.ShapeOf(member[model.KeySchema]) {
		case model.ShapeList:
			pooled, _ := m.pool(members, model.KeySchema, schemaPath)
			out[model.KeySchema] = model.NodeList(m.mergeSiblings(pooled, schemaPath, depth+1))
		case model.ShapeObject:
			// first object wins; conflicting objects are not merged
			out[model.KeySchema] = model.CloneValue(member[model.KeySchema])
		default:
			continue
		}

		break
	}

	return out
}

// pool collects the children stored under key across members, in member
// order, dropping structural duplicates. ok is false when no member has a
// list under key.
func (m *Merger) pool(members []model.Node, key, path string) (pooled []model.Node, ok bool) {
	seen := make(map[string]struct{})

	for _, member := range members {
		children, isList := m.nodeList(member, key, path)
		if !isList {
			continue
		}

		ok = true

		for _, child := range children {
			sig := signature.Of(child)
			if _, dup := seen[sig]; dup {
				continue
			}

			seen[sig] = struct{}{}
			pooled = append(pooled, child)
			m.tracker.Record(m.nodeKey(child))
		}
	}

	slices.SortStableFunc(pooled, func(a, b model.Node) int {
		return m.tracker.Compare(m.nodeKey(a), m.nodeKey(b))
	})

	return pooled, ok
}
