package merge

import (
	"fmt"
	"slices"

	"content-migrator/internal/model"
	"content-migrator/internal/signature"
)

type fieldEntry struct {
	field     model.FieldMapping
	positions []int
}

type placedField struct {
	field    model.FieldMapping
	position int
}

// MergeInstances merges content-model instances sharing one canonical uid.
//
// Fields are matched by normalized FieldKey across instances. The first occurrence of a
// key seeds the merged field and later occurrences are merged into it (see
// mergeProperties). Each merged field is placed at the lower median of the
// array positions it had in its source instances; ties keep first-seen order.
// Metadata comes from the first instance.
//
// Precondition: len(instances) >= 2.
func (m *Merger) MergeInstances(instances []model.ContentModel) model.MergedContentModel {
	entries := make(map[string]*fieldEntry)

	var order []string

	for _, inst := range instances {
		for i, f := range inst.FieldMapping {
			if f == nil {
				m.ReportSkippedField(fmt.Sprintf("null field removed from %s", inst.ID), fmt.Sprintf("fieldMapping[%d]", i))

				continue
			}

			key := m.fieldKey(f)

			e, ok := entries[key]
			if !ok {
				e = &fieldEntry{field: f.Clone()}
				entries[key] = e
				order = append(order, key)
			} else {
				mergeProperties(e.field, f)
			}

			e.positions = append(e.positions, i)
		}
	}

	placed := make([]placedField, 0, len(order))

	for _, key := range order {
		e := entries[key]
		placed = append(placed, placedField{
			field:    m.ProcessField(e.field),
			position: LowerMedian(e.positions),
		})
	}

	slices.SortStableFunc(placed, func(a, b placedField) int {
		return a.position - b.position
	})

	out := instances[0].CloneMeta()
	out.FieldMapping = make([]model.FieldMapping, 0, len(placed))

	for _, p := range placed {
		out.FieldMapping = append(out.FieldMapping, p.field)
	}

	out.MergedFromIDs = make([]string, 0, len(instances))
	for _, inst := range instances {
		out.MergedFromIDs = append(out.MergedFromIDs, inst.ID)
	}

	return out
}

// LowerMedian returns the middle element of the sorted positions, taking the
// element before the midpoint for an even count. It returns 0 for no positions.
func LowerMedian(positions []int) int {
	if len(positions) == 0 {
		return 0
	}

	sorted := slices.Clone(positions)
	slices.Sort(sorted)

	return sorted[(len(sorted)-1)/2]
}

// mergeProperties merges src into the owned node dst:
//   - blocks lists concatenate (deduplicated later by ProcessField)
//   - other lists union by full-value equality
//   - objects merge recursively
//   - any other value is only written when dst has none (first write wins)
func mergeProperties(dst, src model.Node) {
	for k, sv := range src {
		if sv == nil {
			continue
		}

		dv, exists := dst[k]
		if !exists || dv == nil {
			dst[k] = model.CloneValue(sv)
			continue
		}

		dList, dIsList := toList(dv)
		sList, sIsList := toList(sv)

		switch {
		case dIsList && sIsList && k == model.KeyBlocks:
			dst[k] = append(dList, cloneList(sList)...)
		case dIsList && sIsList:
			dst[k] = unionList(dList, sList)
		default:
			dObj, dIsObj := model.AsNode(dv)
			sObj, sIsObj := model.AsNode(sv)

			if dIsObj && sIsObj {
				mergeProperties(dObj, sObj)
			}
		}
	}
}

// toList returns v as an owned-compatible []any when it is a list.
func toList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, true
	case []model.Node, []map[string]any, []string:
		cp, ok := model.CloneValue(list).([]any)
		return cp, ok
	default:
		return nil, false
	}
}

func cloneList(list []any) []any {
	out, _ := model.CloneValue(list).([]any)
	return out
}

// unionList appends to dst every element of src not already present by value.
func unionList(dst, src []any) []any {
	seen := make(map[string]struct{}, len(dst)+len(src))
	for _, v := range dst {
		seen[signature.ValueKey(v)] = struct{}{}
	}

	for _, v := range src {
		k := signature.ValueKey(v)
		if _, dup := seen[k]; dup {
			continue
		}

		seen[k] = struct{}{}
		dst = append(dst, model.CloneValue(v))
	}

	return dst
}
