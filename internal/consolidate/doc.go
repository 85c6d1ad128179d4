// Package consolidate reduces raw content-model exports into one merged
// content model per canonical uid.
//
// Pipeline of one Consolidate call:
//  1. Start a fresh type-order tracker (never shared between calls).
//  2. Input whose first model already carries mergedFromIds is treated as
//     merged output: every field is re-processed, nothing is regrouped.
//  3. Otherwise models are grouped by target uid in discovery order.
//     Single-instance groups are processed field by field; larger groups go
//     through merge.MergeInstances.
//  4. Results are returned in group discovery order together with the run's
//     diagnostics.
//
// Precondition: the input is a list of content models. Consolidate never
// returns an error; malformed fields and nodes are dropped and reported.
package consolidate
