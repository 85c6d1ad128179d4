package typeorder

import "strings"

// Tracker records the first-seen order of categories.
type Tracker struct {
	classifier *Classifier
	order      []string
	pos        map[string]int
}

// NewTracker returns an empty Tracker. A nil classifier uses DefaultClassifier.
func NewTracker(c *Classifier) *Tracker {
	if c == nil {
		c = DefaultClassifier()
	}

	return &Tracker{
		classifier: c,
		pos:        make(map[string]int),
	}
}

// Reset forgets every discovered category.
func (t *Tracker) Reset() {
	t.order = nil
	t.pos = make(map[string]int)
}

// Classify returns the category of key.
func (t *Tracker) Classify(key string) string {
	return t.classifier.Classify(key)
}

// Record appends the category of key to the discovered order unless it is already known.
func (t *Tracker) Record(key string) {
	category := t.classifier.Classify(key)
	if _, seen := t.pos[category]; seen {
		return
	}

	t.pos[category] = len(t.order)
	t.order = append(t.order, category)
}

// Position returns the discovered position of the category of key.
func (t *Tracker) Position(key string) (int, bool) {
	p, ok := t.pos[t.classifier.Classify(key)]
	return p, ok
}

// Compare orders keys by the discovered position of their categories. Known
// keys sort before unknown ones; two unknown keys sort lexicographically.
func (t *Tracker) Compare(a, b string) int {
	pa, okA := t.Position(a)
	pb, okB := t.Position(b)

	switch {
	case okA && okB:
		switch {
		case pa < pb:
			return -1
		case pa > pb:
			return 1
		default:
			return 0
		}
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Order returns the discovered categories in first-seen order.
func (t *Tracker) Order() []string {
	return append([]string{}, t.order...)
}
