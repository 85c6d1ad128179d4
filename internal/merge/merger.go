package merge

import (
	"fmt"

	"content-migrator/internal/common"
	"content-migrator/internal/diagnostic"
	"content-migrator/internal/model"
	"content-migrator/internal/typeorder"
	"content-migrator/internal/uid"
)

// DefaultMaxDepth bounds recursion through nested blocks and schema.
const DefaultMaxDepth = 64

// Options configures a Merger.
type Options struct {
	// Normalizer rewrites uids. Nil uses uid.Default().
	Normalizer *uid.Normalizer
	// Tracker holds the discovered type order. Nil creates a fresh tracker.
	Tracker *typeorder.Tracker
	// MaxDepth bounds recursion. Zero uses DefaultMaxDepth.
	MaxDepth int
	// Diagnostics receives skipped-element and depth-guard reports. Optional.
	Diagnostics *diagnostic.Diagnostics
}

// Merger carries the state of one consolidation run. It is not safe for
// concurrent use.
type Merger struct {
	norm     *uid.Normalizer
	tracker  *typeorder.Tracker
	maxDepth int
	diags    *diagnostic.Diagnostics
	model    string
}

// New returns a Merger configured by opts.
func New(opts Options) *Merger {
	m := &Merger{
		norm:     opts.Normalizer,
		tracker:  opts.Tracker,
		maxDepth: opts.MaxDepth,
		diags:    opts.Diagnostics,
	}

	if m.norm == nil {
		m.norm = uid.Default()
	}

	if m.tracker == nil {
		m.tracker = typeorder.NewTracker(nil)
	}

	if m.maxDepth <= 0 {
		m.maxDepth = DefaultMaxDepth
	}

	return m
}

// ForModel returns a Merger sharing this run's state whose diagnostics are
// attributed to the content model with the given canonical uid.
func (m *Merger) ForModel(canonicalUID string) *Merger {
	cp := *m
	cp.model = canonicalUID

	return &cp
}

// Tracker returns the run's type-order tracker.
func (m *Merger) Tracker() *typeorder.Tracker {
	return m.tracker
}

// FieldKey returns the raw identity of a field: uid, else target uid, else
// source id, else source name and target name combined.
func FieldKey(f model.FieldMapping) string {
	if k := common.FirstNonEmpty(f.UID(), f.TargetUID(), f.ID()); k != "" {
		return k
	}

	return f.Str(model.KeySourceField) + "::" + f.Str(model.KeyTargetField)
}

// NodeKey returns the raw identity of a block node: target uid, else uid,
// else "unknown".
func NodeKey(n model.BlockNode) string {
	if k := common.FirstNonEmpty(n.TargetUID(), n.UID()); k != "" {
		return k
	}

	return common.UnknownStr
}

// fieldKey is FieldKey over normalized uids, so fields whose uids only
// differ in spelling share one identity.
func (m *Merger) fieldKey(f model.FieldMapping) string {
	if k := common.FirstNonEmpty(m.norm.Normalize(f.UID()), m.norm.Normalize(f.TargetUID()), f.ID()); k != "" {
		return k
	}

	return f.Str(model.KeySourceField) + "::" + f.Str(model.KeyTargetField)
}

// nodeKey is NodeKey over normalized uids.
func (m *Merger) nodeKey(n model.BlockNode) string {
	if k := common.FirstNonEmpty(m.norm.Normalize(n.TargetUID()), m.norm.Normalize(n.UID())); k != "" {
		return k
	}

	return common.UnknownStr
}

// nodeList reads the node list stored under key, reporting dropped elements.
func (m *Merger) nodeList(n model.Node, key, path string) ([]model.Node, bool) {
	nodes, skipped, ok := model.AsNodes(n[key])
	if skipped > 0 {
		m.info(diagnostic.CodeNodeSkipped,
			fmt.Sprintf("dropped %d malformed entries from %s", skipped, key), path)
	}

	return nodes, ok
}

// ReportSkippedField records a null or malformed field dropped by the caller.
func (m *Merger) ReportSkippedField(message, path string) {
	m.info(diagnostic.CodeFieldSkipped, message, path)
}

func (m *Merger) info(code, message, path string) {
	if m.diags != nil {
		m.diags.AddInfo(code, message, m.model, path)
	}
}

func (m *Merger) warn(code, message, path string) {
	if m.diags != nil {
		m.diags.AddWarning(code, message, m.model, path)
	}
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}

	return parent + "." + child
}
