package merge

import (
	"fmt"
	"slices"

	"content-migrator/internal/common"
	"content-migrator/internal/diagnostic"
	"content-migrator/internal/model"
)

// ProcessField merges the field's blocks and normalizes every uid in the
// field tree. A nil field yields nil; callers drop those from the result.
func (m *Merger) ProcessField(field model.FieldMapping) model.FieldMapping {
	if field == nil {
		return nil
	}

	path := m.fieldKey(field)

	blocks, ok := m.nodeList(field, model.KeyBlocks, joinPath(path, model.KeyBlocks))
	if !ok {
		return m.norm.Apply(field)
	}

	merged := make(model.Node, len(field))
	for k, v := range field {
		merged[k] = v
	}

	merged[model.KeyBlocks] = model.NodeList(m.mergeSiblings(blocks, joinPath(path, model.KeyBlocks), 1))

	return m.norm.Apply(merged)
}

// ProcessFields runs ProcessField over the fields of one model, dropping nil
// entries. Fields sharing a normalized identity key are folded into the first
// of them with the property rules of MergeInstances.
func (m *Merger) ProcessFields(fields []model.FieldMapping) []model.FieldMapping {
	fields = slices.DeleteFunc(slices.Clone(fields), func(f model.FieldMapping) bool { return f == nil })

	order, groups := common.GroupOrdered(fields, m.fieldKey)

	out := make([]model.FieldMapping, 0, len(order))

	for _, key := range order {
		members := groups[key]
		field := members[0]

		if common.IsMultiple(members) {
			field = field.Clone()
			for _, f := range members[1:] {
				mergeProperties(field, f)
			}

			m.info(diagnostic.CodeFieldFolded,
				fmt.Sprintf("folded %d fields sharing identity %q", len(members), key), key)
		}

		out = append(out, m.ProcessField(field))
	}

	return out
}
