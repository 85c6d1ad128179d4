package consolidate

import (
	"fmt"

	"content-migrator/internal/common"
	"content-migrator/internal/diagnostic"
	"content-migrator/internal/merge"
	"content-migrator/internal/model"
	"content-migrator/internal/similar"
	"content-migrator/internal/typeorder"
	"content-migrator/internal/uid"
)

// Options configures an Engine.
type Options struct {
	// Normalizer rewrites uids. Nil uses uid.Default().
	Normalizer *uid.Normalizer
	// Classifier collapses identity keys into ordering categories. Nil uses
	// typeorder.DefaultClassifier().
	Classifier *typeorder.Classifier
	// MaxDepth bounds recursion through nested trees. Zero uses merge.DefaultMaxDepth.
	MaxDepth int
	// SimilarityThreshold is the score at which two distinct output uids are
	// reported as near duplicates. Zero uses similar.DefaultThreshold, a
	// negative value disables the check.
	SimilarityThreshold float64
}

// Engine consolidates content models. It holds only immutable configuration,
// so one Engine may serve concurrent Consolidate calls.
type Engine struct {
	normalizer *uid.Normalizer
	classifier *typeorder.Classifier
	maxDepth   int
	similarity float64
}

// Group describes one output model.
type Group struct {
	// UID is the canonical target uid of the group.
	UID string
	// Path tells how the model was produced.
	Path Path
	// SourceIDs are the ids of the input models folded into the output.
	SourceIDs []string
}

// Result is the outcome of one Consolidate call.
type Result struct {
	// Models are the merged content models in group discovery order.
	Models []model.MergedContentModel
	// Groups describes Models, index for index.
	Groups []Group
	// TypeOrder is the category order discovered during the run.
	TypeOrder []string
	// Diagnostics collects everything dropped or noteworthy.
	Diagnostics diagnostic.Diagnostics
}

// New returns an Engine configured by opts.
func New(opts Options) *Engine {
	e := &Engine{
		normalizer: opts.Normalizer,
		classifier: opts.Classifier,
		maxDepth:   opts.MaxDepth,
		similarity: opts.SimilarityThreshold,
	}

	if e.similarity == 0 {
		e.similarity = similar.DefaultThreshold
	}

	if e.normalizer == nil {
		e.normalizer = uid.Default()
	}

	if e.classifier == nil {
		e.classifier = typeorder.DefaultClassifier()
	}

	return e
}

// Default returns an Engine with default options.
func Default() *Engine {
	return New(Options{})
}

// Consolidate merges models with a default Engine and returns the merged list.
func Consolidate(models []model.ContentModel) []model.MergedContentModel {
	return Default().Consolidate(models).Models
}

// Consolidate groups models by canonical uid and merges each group. Every
// call owns a fresh type-order tracker.
func (e *Engine) Consolidate(models []model.ContentModel) *Result {
	res := &Result{}
	tracker := typeorder.NewTracker(e.classifier)

	m := merge.New(merge.Options{
		Normalizer:  e.normalizer,
		Tracker:     tracker,
		MaxDepth:    e.maxDepth,
		Diagnostics: &res.Diagnostics,
	})

	if first, ok := common.First(models); ok && first.IsMerged() {
		e.reprocess(m, models, res)
	} else {
		e.consolidateRaw(m, models, res)
	}

	res.TypeOrder = tracker.Order()
	e.reportSimilar(res)

	return res
}

// reprocess re-applies field processing to already merged models.
func (e *Engine) reprocess(m *merge.Merger, models []model.MergedContentModel, res *Result) {
	res.Diagnostics.AddInfo(diagnostic.CodeReentrantInput,
		fmt.Sprintf("input of %d models is already merged; re-processing fields only", len(models)), "", "")

	for i := range models {
		in := &models[i]

		out := in.CloneMeta()
		out.FieldMapping = processFields(m.ForModel(in.TargetUID), in)

		res.add(out, Group{UID: in.TargetUID, Path: PathReentrant, SourceIDs: out.MergedFromIDs})
	}
}

func (e *Engine) consolidateRaw(m *merge.Merger, models []model.ContentModel, res *Result) {
	order, groups := common.GroupOrdered(models, func(cm model.ContentModel) string {
		return cm.TargetUID
	})

	for _, key := range order {
		instances := groups[key]
		gm := m.ForModel(key)

		if key == "" {
			res.Diagnostics.AddWarning(diagnostic.CodeEmptyCanonicalUID,
				fmt.Sprintf("%d content models have no target uid and are grouped together", len(instances)), "", "")
		}

		if common.IsSingle(instances) {
			in := &instances[0]

			out := in.CloneMeta()
			out.FieldMapping = processFields(gm, in)
			out.MergedFromIDs = []string{in.ID}

			res.add(out, Group{UID: key, Path: PathSingle, SourceIDs: out.MergedFromIDs})

			continue
		}

		out := gm.MergeInstances(instances)
		res.Diagnostics.AddInfo(diagnostic.CodeGroupMerged,
			fmt.Sprintf("merged %d instances into one content model", len(instances)), key, "")

		res.add(out, Group{UID: key, Path: PathMulti, SourceIDs: out.MergedFromIDs})
	}
}

// processFields runs field processing over one model, reporting dropped entries.
func processFields(m *merge.Merger, in *model.ContentModel) []model.FieldMapping {
	for i, f := range in.FieldMapping {
		if f == nil {
			m.ReportSkippedField(fmt.Sprintf("null field removed from %s", in.ID), fmt.Sprintf("fieldMapping[%d]", i))
		}
	}

	return m.ProcessFields(in.FieldMapping)
}

// reportSimilar warns about output uids that look like one content type
// spelled two ways. Such groups stay separate.
func (e *Engine) reportSimilar(res *Result) {
	uids := make([]string, 0, len(res.Groups))
	for _, g := range res.Groups {
		uids = append(uids, g.UID)
	}

	for _, p := range similar.Pairs(uids, e.similarity) {
		res.Diagnostics.AddWarning(diagnostic.CodeSimilarUIDs,
			fmt.Sprintf("content types %q and %q look alike (score %.2f) but were not merged", p.A, p.B, p.Score), p.A, "")
	}
}

func (r *Result) add(cm model.MergedContentModel, g Group) {
	r.Models = append(r.Models, cm)
	r.Groups = append(r.Groups, g)
}
