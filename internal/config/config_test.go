package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-migrator/internal/merge"
	"content-migrator/internal/model"
	"content-migrator/internal/similar"
	"content-migrator/internal/typeorder"
	"content-migrator/internal/uid"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
uid:
  namespace: legacy
  restrictedKeywords: [title, url]
  reservedPatterns: "^[0-9]"
typeOrder:
  classifiers:
    - pattern: custom-embed
      category: embed
    - pattern: gallery
      category: media
merge:
  maxDepth: 8
output:
  chunkSize: 25
  workers: 2
log:
  level: debug
`

	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "legacy", cfg.UID.Namespace)
	assert.Equal(t, StringOrArray{"title", "url"}, cfg.UID.RestrictedKeywords)
	assert.Equal(t, StringOrArray{"^[0-9]"}, cfg.UID.ReservedPatterns)
	assert.Equal(t, StringOrArray(uid.DefaultIdentifierKeys), cfg.UID.IdentifierKeys)
	require.Len(t, cfg.TypeOrder.Classifiers, 2)
	assert.Equal(t, typeorder.Rule{Pattern: "custom-embed", Category: "embed"}, cfg.TypeOrder.Classifiers[0])
	assert.Equal(t, 8, cfg.Merge.MaxDepth)
	assert.Equal(t, 25, cfg.Output.ChunkSize)
	assert.Equal(t, 2, cfg.Output.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)

	norm, err := cfg.Normalizer()
	require.NoError(t, err)
	assert.Equal(t, "legacy_title", norm.Normalize("Title"))

	classifier, err := cfg.Classifier()
	require.NoError(t, err)
	assert.Equal(t, "embed", classifier.Classify("CustomEmbed-3"))
}

func TestParseMinimal(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, uid.DefaultNamespace, cfg.UID.Namespace)
	assert.Equal(t, StringOrArray(uid.DefaultRestrictedKeywords), cfg.UID.RestrictedKeywords)
	assert.Equal(t, typeorder.DefaultRules, cfg.TypeOrder.Classifiers)
	assert.Equal(t, merge.DefaultMaxDepth, cfg.Merge.MaxDepth)
	assert.InDelta(t, similar.DefaultThreshold, cfg.Merge.SimilarityThreshold, 1e-9)
	assert.Equal(t, 0, cfg.Output.ChunkSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParseEmptyKeywordListDisablesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("uid:\n  restrictedKeywords: []\n"))
	require.NoError(t, err)

	norm, err := cfg.Normalizer()
	require.NoError(t, err)
	assert.Equal(t, "tags", norm.Normalize("Tags"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "uid: ["},
		{"version", `version: "2"`},
		{"log level", "log:\n  level: loud\n"},
		{"chunk size", "output:\n  chunkSize: -1\n"},
		{"similarity", "merge:\n  similarityThreshold: 1.5\n"},
		{"namespace", "uid:\n  namespace: \"9x\"\n"},
		{"pattern", "uid:\n  reservedPatterns: \"(\"\n"},
		{"identifier keys", "uid:\n  identifierKeys: []\n"},
		{"classifier", "typeOrder:\n  classifiers:\n    - pattern: x\n"},
		{"string or array", "uid:\n  restrictedKeywords: {a: b}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("merge:\n  maxDepth: 3\n"), 0o644))

	cfg, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Merge.MaxDepth)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestEngineFromConfig(t *testing.T) {
	cfg, err := Parse([]byte("uid:\n  namespace: ns\n  restrictedKeywords: headline\n"))
	require.NoError(t, err)

	e, err := cfg.Engine()
	require.NoError(t, err)

	res := e.Consolidate([]model.ContentModel{{
		ID: "a", TargetUID: "a",
		FieldMapping: []model.FieldMapping{{"uid": "Headline"}},
	}})
	require.Len(t, res.Models, 1)
	assert.Equal(t, "ns_headline", res.Models[0].FieldMapping[0].UID())
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.UID.RestrictedKeywords = StringOrArray{"only"}

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "restrictedKeywords: only")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
