package uid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"content-migrator/internal/model"
)

// maxPrefixPasses bounds how often the namespace is re-applied when a prefixed
// uid is itself restricted.
const maxPrefixPasses = 3

// DefaultNamespace is the prefix token used for restricted uids.
const DefaultNamespace = "cs"

// DefaultRestrictedKeywords are uids reserved by the target CMS.
var DefaultRestrictedKeywords = []string{
	"uid", "api_key", "created_at", "deleted_at", "updated_at", "tags_array",
	"klass_id", "applikation_id", "id", "_id", "ACL", "SYS_ACL", "DEFAULT_ACL",
	"app_user_object_uid", "built_io_upload", "__loc", "tags", "_owner",
	"_version", "toJSON", "save", "update", "domain", "share_account",
	"shard_app", "shard_random", "shard_account", "hook", "__indexes", "__meta",
	"created_by", "updated_by", "inbuilt_class", "publish_details",
	"isSystemUser", "is_system", "locale", "_metadata", "dimension",
}

// DefaultReservedPatterns match sanitized uids that need the namespace prefix.
var DefaultReservedPatterns = []string{`^[0-9]`}

// DefaultIdentifierKeys are the node keys rewritten by Apply.
var DefaultIdentifierKeys = []string{
	model.KeyUID,
	model.KeyTargetFieldUID,
	model.KeyTargetUID,
	model.KeyBackupFieldUID,
}

// Options configures a Normalizer. Zero-valued slices fall back to the defaults.
type Options struct {
	Namespace          string
	RestrictedKeywords []string
	ReservedPatterns   []string
	IdentifierKeys     []string
}

// Normalizer rewrites identifiers. It is immutable and safe for concurrent use.
type Normalizer struct {
	namespace      string
	restricted     map[string]struct{}
	patterns       []*regexp.Regexp
	identifierKeys []string
}

// New builds a Normalizer from opts.
func New(opts Options) (*Normalizer, error) {
	ns := opts.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}

	if sanitize(ns) != ns || !isLower(ns[0]) {
		return nil, fmt.Errorf("invalid uid namespace %q: must be lower-case [a-z0-9_] starting with a letter", ns)
	}

	keywords := opts.RestrictedKeywords
	if keywords == nil {
		keywords = DefaultRestrictedKeywords
	}

	patterns := opts.ReservedPatterns
	if patterns == nil {
		patterns = DefaultReservedPatterns
	}

	keys := opts.IdentifierKeys
	if keys == nil {
		keys = DefaultIdentifierKeys
	}

	n := &Normalizer{
		namespace:      ns,
		restricted:     make(map[string]struct{}, len(keywords)),
		identifierKeys: append([]string{}, keys...),
	}

	for _, kw := range keywords {
		if s := sanitize(kw); s != "" {
			n.restricted[s] = struct{}{}
		}
	}

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid reserved uid pattern %q: %w", p, err)
		}

		n.patterns = append(n.patterns, re)
	}

	if len(keys) == 0 {
		return nil, errors.New("at least one identifier key is required")
	}

	if err := n.checkPrefix(); err != nil {
		return nil, err
	}

	return n, nil
}

// checkPrefix rejects configurations where the namespace prefix cannot lift a
// uid out of the restricted set, which would leave Normalize output restricted.
func (n *Normalizer) checkPrefix() error {
	prefix := n.namespace + "_"

	for _, re := range n.patterns {
		if re.MatchString(prefix) {
			return fmt.Errorf("uid namespace %q matches reserved pattern %q", n.namespace, re.String())
		}
	}

	for kw := range n.restricted {
		if out := n.Normalize(kw); n.isRestricted(out) {
			return fmt.Errorf("restricted keyword %q is still restricted after %d namespace prefixes", kw, maxPrefixPasses)
		}
	}

	return nil
}

// MustNew is like New but panics on invalid options.
func MustNew(opts Options) *Normalizer {
	n, err := New(opts)
	if err != nil {
		panic(err)
	}

	return n
}

// Default returns a Normalizer with the default options.
func Default() *Normalizer {
	return MustNew(Options{})
}

// Normalize sanitizes raw into a target-safe uid. Empty input yields "".
func (n *Normalizer) Normalize(raw string) string {
	out := sanitize(raw)
	if out == "" {
		return ""
	}

	for range maxPrefixPasses {
		if !n.isRestricted(out) {
			break
		}

		out = sanitize(n.namespace + "_" + out)
	}

	return out
}

// IsRestricted reports whether the sanitized form of raw needs the namespace prefix.
func (n *Normalizer) IsRestricted(raw string) bool {
	return n.isRestricted(sanitize(raw))
}

func (n *Normalizer) isRestricted(s string) bool {
	if _, ok := n.restricted[s]; ok {
		return true
	}

	for _, re := range n.patterns {
		if re.MatchString(s) {
			return true
		}
	}

	return false
}

// Apply returns a copy of node with every identifier key normalized,
// recursing through its blocks and schema trees.
func (n *Normalizer) Apply(node model.Node) model.Node {
	if node == nil {
		return nil
	}

	out := make(model.Node, len(node))
	for k, v := range node {
		out[k] = v
	}

	for _, key := range n.identifierKeys {
		if s, ok := out[key].(string); ok && s != "" {
			out[key] = n.Normalize(s)
		}
	}

	for _, key := range []string{model.KeyBlocks, model.KeySchema} {
		if v, ok := out[key]; ok {
			out[key] = n.applyValue(v)
		}
	}

	for k, v := range out {
		if k == model.KeyBlocks || k == model.KeySchema {
			continue
		}

		out[k] = model.CloneValue(v)
	}

	return out
}

func (n *Normalizer) applyValue(v any) any {
	switch model.ShapeOf(v) {
	case model.ShapeObject:
		child, _ := model.AsNode(v)
		return n.Apply(child)
	case model.ShapeList:
		children, _, _ := model.AsNodes(v)

		out := make([]any, len(children))
		for i, child := range children {
			out[i] = n.Apply(child)
		}

		return out
	default:
		return model.CloneValue(v)
	}
}

// sanitize lower-cases raw, splitting CamelCase boundaries with "_" and
// replacing everything outside [a-zA-Z0-9] with a single "_". The result
// never starts with "_".
func sanitize(raw string) string {
	var b strings.Builder

	b.Grow(len(raw) + 4)

	lastSep := true

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if !isAlnum(c) {
			if b.Len() > 0 && !lastSep {
				b.WriteByte('_')
			}

			lastSep = true

			continue
		}

		if i > 0 && !lastSep && startsToken(raw, i) {
			b.WriteByte('_')
		}

		b.WriteByte(toLower(c))

		lastSep = false
	}

	return b.String()
}

// startsToken determines if a CamelCase token starts at position i.
func startsToken(s string, i int) bool {
	c := s[i]
	prev := s[i-1]

	if !isUpper(c) {
		return false
	}

	// "orderID" -> split before 'I'
	if !isUpper(prev) {
		return true
	}

	// "XMLParser" -> "XML" + "Parser", split before 'P'
	return i+1 < len(s) && isLower(s[i+1])
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlnum(c byte) bool { return isUpper(c) || isLower(c) || isDigit(c) }

func toLower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}

	return c
}
