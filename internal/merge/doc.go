// Package merge folds divergent field-mapping trees into one canonical tree.
//
// Three operations share one Merger, and therefore one type-order tracker:
//
//   - MergeSiblings deduplicates one sibling list (a blocks or schema array)
//     by identity key, recursively merging members that share a key.
//   - ProcessField applies MergeSiblings to a field's blocks and then
//     normalizes every uid in the field tree.
//   - MergeInstances merges several content-model instances that share a
//     canonical uid, reconciling fields and reconstructing field order from
//     the median of the positions each field had in its source instances.
//
// None of the operations mutate their inputs; every returned node is a new
// copy owned by the caller.
package merge
