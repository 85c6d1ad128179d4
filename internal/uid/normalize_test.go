package uid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-migrator/internal/model"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// CamelCase
		{"HeroBanner", "hero_banner"},
		{"heroBanner", "hero_banner"},
		{"XMLParser", "xml_parser"},
		{"getHTTPResponse", "get_http_response"},
		{"field1Name", "field1_name"},

		// Separators
		{"hero-banner", "hero_banner"},
		{"hero banner", "hero_banner"},
		{"hero  --  banner", "hero_banner"},
		{"hero.banner/title", "hero_banner_title"},
		{"a__b", "a_b"},

		// Leading underscore
		{"_title", "title"},
		{"__loc", "loc"},
		{"-x", "x"},

		// Non-ASCII is disallowed
		{"café", "caf_"},

		// Edge cases
		{"", ""},
		{"___", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitize(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	n := MustNew(Options{
		Namespace:          "cs",
		RestrictedKeywords: []string{"title", "abc", "toJSON"},
	})

	tests := []struct {
		input    string
		expected string
	}{
		{"Title", "cs_title"},
		{"_title", "cs_title"},
		{"to_json", "cs_to_json"},
		{"123abc", "cs_123abc"},
		{"abc", "cs_abc"},
		{"abcd", "abcd"},
		{"Hero Banner", "hero_banner"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := MustNew(Options{RestrictedKeywords: []string{"abc", "title", "cs_title"}})

	inputs := []string{
		"123abc", "abc", "Title", "title", "HeroBanner", "__Deep--Name__",
		"café au lait", "CustomEmbed-1", "9", "x_", "getHTTPResponse", "cs_title",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := n.Normalize(in)
			assert.Equal(t, once, n.Normalize(once))
			assert.Equal(t, once, n.Normalize(in), "deterministic")

			assert.False(t, strings.HasPrefix(once, "_"))
			assert.Equal(t, strings.ToLower(once), once)
			assert.NotContains(t, once, " ")
		})
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{Namespace: "9ns"})
	require.Error(t, err)

	_, err = New(Options{Namespace: "Cs"})
	require.Error(t, err)

	_, err = New(Options{ReservedPatterns: []string{"("}})
	require.Error(t, err)

	_, err = New(Options{IdentifierKeys: []string{}})
	require.Error(t, err)
}

func TestNewRejectsInescapableRestrictions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"pattern matches namespace", Options{ReservedPatterns: []string{"^c"}}},
		{"pattern matches custom namespace", Options{Namespace: "legacy", ReservedPatterns: []string{"^leg"}}},
		{"keyword chain too long", Options{RestrictedKeywords: []string{"x", "cs_x", "cs_cs_x", "cs_cs_cs_x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.Error(t, err)
		})
	}

	n, err := New(Options{RestrictedKeywords: []string{"x", "cs_x", "cs_cs_x"}})
	require.NoError(t, err)
	assert.Equal(t, "cs_cs_cs_x", n.Normalize("x"))
	assert.Equal(t, "cs_cs_cs_x", n.Normalize(n.Normalize("x")))
}

func TestIsRestricted(t *testing.T) {
	n := Default()

	assert.True(t, n.IsRestricted("created_at"))
	assert.True(t, n.IsRestricted("CreatedAt"))
	assert.True(t, n.IsRestricted("1st"))
	assert.False(t, n.IsRestricted("headline"))
}

func TestApplyNormalizesTree(t *testing.T) {
	n := Default()

	field := model.Node{
		"uid":                  "HeroBanner",
		"contentstackFieldUid": "Hero Banner",
		"backupFieldUid":       "hero-banner",
		"otherCmsField":        "Hero Banner",
		"advanced":             map[string]any{"uid": "NotTouched"},
		"blocks": []any{
			map[string]any{
				"uid":             "CustomEmbed",
				"contentstackUid": "Custom Embed",
				"schema": map[string]any{
					"uid": "InnerThing",
				},
			},
		},
		"schema": []any{
			map[string]any{"uid": "Tags"},
		},
	}

	out := n.Apply(field)

	assert.Equal(t, "hero_banner", out.UID())
	assert.Equal(t, "hero_banner", out.Str(model.KeyTargetFieldUID))
	assert.Equal(t, "hero_banner", out.Str(model.KeyBackupFieldUID))
	assert.Equal(t, "Hero Banner", out.Str(model.KeySourceField))
	assert.Equal(t, "NotTouched", out[model.KeyAdvanced].(model.Node)["uid"])

	blocks, _, ok := model.AsNodes(out[model.KeyBlocks])
	require.True(t, ok)
	require.Len(t, blocks, 1)
	assert.Equal(t, "custom_embed", blocks[0].UID())
	assert.Equal(t, "custom_embed", blocks[0].Str(model.KeyTargetUID))

	inner, ok := model.AsNode(blocks[0][model.KeySchema])
	require.True(t, ok)
	assert.Equal(t, "inner_thing", inner.UID())

	schema, _, ok := model.AsNodes(out[model.KeySchema])
	require.True(t, ok)
	assert.Equal(t, "cs_tags", schema[0].UID())

	// input untouched
	assert.Equal(t, "HeroBanner", field["uid"])
	assert.Equal(t, "CustomEmbed", field["blocks"].([]any)[0].(map[string]any)["uid"])
}

func TestApplyNil(t *testing.T) {
	assert.Nil(t, Default().Apply(nil))
}
