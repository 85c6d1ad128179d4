// Package diagnostic provides structured warnings, errors and informational
// notes collected during a consolidation run.
//
// Key capabilities:
//   - Malformed field and node reports (skipped, never fatal)
//   - Merge group summaries
//   - Depth guard and empty canonical uid warnings
package diagnostic
