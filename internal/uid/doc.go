// Package uid sanitizes raw identifiers into uids accepted by the target CMS.
//
// The normalization pipeline:
//  1. Split CamelCase boundaries and lower-case.
//  2. Replace anything outside [a-z0-9_] with "_" and collapse runs of "_".
//  3. Drop leading underscores.
//  4. Prefix restricted results (keywords or reserved patterns) with the
//     configured namespace token and sanitize again.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
package uid
