// Package model defines the content-model shapes exchanged with the
// field-mapping extraction step and the schema writer.
//
// Field mappings and block nodes are kept as open JSON-object trees (Node)
// because every property other than the identity, blocks and schema keys is
// opaque to consolidation and must survive it untouched. Content models are
// typed structs that keep unknown keys in Extra.
//
// Nothing in this package mutates its inputs. Clone and CloneValue produce
// independent copies in canonical form: objects become Node and arrays
// become []any.
package model
