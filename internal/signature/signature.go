// Package signature computes canonical fingerprints of field-mapping trees.
//
// A signature is the SHA-256 of a canonical encoding of the value: object
// keys are sorted, volatile keys are dropped at every depth, list order is
// kept (order inside blocks and schema is meaningful), and numbers are
// encoded by value so 1, 1.0 and json.Number("1") agree.
//
// Signatures are only ever compared for equality inside one merge group.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"content-migrator/internal/model"
)

// DefaultVolatileKeys are ignored when fingerprinting nodes.
var DefaultVolatileKeys = []string{model.KeyID, "position", "index"}

// Hasher fingerprints values while ignoring a fixed set of keys.
type Hasher struct {
	volatile map[string]struct{}
}

// New returns a Hasher ignoring the given keys.
func New(volatileKeys ...string) *Hasher {
	h := &Hasher{volatile: make(map[string]struct{}, len(volatileKeys))}
	for _, k := range volatileKeys {
		h.volatile[k] = struct{}{}
	}

	return h
}

var (
	structural = New(DefaultVolatileKeys...)
	exact      = New()
)

// Of returns the structural signature of v using the default volatile keys.
func Of(v any) string {
	return structural.Of(v)
}

// Equal reports whether a and b are equal as full values, volatile keys included.
func Equal(a, b any) bool {
	return exact.Canonical(a) == exact.Canonical(b)
}

// ValueKey returns the full-value canonical encoding of v, usable as a map key
// for equality-based set operations.
func ValueKey(v any) string {
	return exact.Canonical(v)
}

// Of returns the hex SHA-256 of the canonical encoding of v.
func (h *Hasher) Of(v any) string {
	sum := sha256.Sum256([]byte(h.Canonical(v)))
	return hex.EncodeToString(sum[:])
}

// Canonical returns the canonical encoding of v.
func (h *Hasher) Canonical(v any) string {
	var b strings.Builder

	h.write(&b, v)

	return b.String()
}

func (h *Hasher) write(b *strings.Builder, v any) {
	switch val := v.(type) {
	case nil:
		b.WriteString("n")
	case bool:
		if val {
			b.WriteString("t")
		} else {
			b.WriteString("f")
		}
	case string:
		b.WriteString("s")
		b.WriteString(strconv.Quote(val))
	case float64:
		writeNumber(b, val)
	case float32:
		writeNumber(b, float64(val))
	case int:
		writeNumber(b, float64(val))
	case int64:
		writeNumber(b, float64(val))
	case json.Number:
		if f, err := val.Float64(); err == nil {
			writeNumber(b, f)
		} else {
			b.WriteString("s")
			b.WriteString(strconv.Quote(val.String()))
		}
	case model.Node:
		h.writeObject(b, val)
	case map[string]any:
		h.writeObject(b, val)
	case []any:
		b.WriteString("[")

		for _, item := range val {
			h.write(b, item)
			b.WriteString(",")
		}

		b.WriteString("]")
	case []model.Node:
		b.WriteString("[")

		for _, item := range val {
			if item == nil {
				h.write(b, nil)
			} else {
				h.writeObject(b, item)
			}

			b.WriteString(",")
		}

		b.WriteString("]")
	case []string:
		b.WriteString("[")

		for _, item := range val {
			h.write(b, item)
			b.WriteString(",")
		}

		b.WriteString("]")
	default:
		fmt.Fprintf(b, "x%q", fmt.Sprintf("%T:%v", v, v))
	}
}

func (h *Hasher) writeObject(b *strings.Builder, obj map[string]any) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if _, skip := h.volatile[k]; skip {
			continue
		}

		keys = append(keys, k)
	}

	slices.Sort(keys)

	b.WriteString("{")

	for _, k := range keys {
		b.WriteString(strconv.Quote(k))
		b.WriteString(":")
		h.write(b, obj[k])
		b.WriteString(",")
	}

	b.WriteString("}")
}

func writeNumber(b *strings.Builder, f float64) {
	b.WriteString("d")
	b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}
