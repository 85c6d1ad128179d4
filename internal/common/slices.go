package common

// UnknownStr is the placeholder used when an identity or name cannot be derived.
const UnknownStr = "unknown"

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// IsMultiple returns true if the slice has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// FirstNonEmpty returns the first non-empty string of values, or "" if all are empty.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

// GroupOrdered groups items by key and returns the distinct keys in the order
// they were first seen alongside the grouped items.
func GroupOrdered[E any](items []E, keyFn func(E) string) ([]string, map[string][]E) {
	var order []string

	groups := make(map[string][]E)

	for _, item := range items {
		k := keyFn(item)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}

		groups[k] = append(groups[k], item)
	}

	return order, groups
}
