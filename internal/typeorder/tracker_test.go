package typeorder

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		key      string
		expected string
	}{
		{"CustomEmbed-1", "customembed"},
		{"custom_embed_2", "customembed"},
		{"Custom Embed", "customembed"},
		{"myCustomEmbedWidget", "customembed"},
		{"HeroBanner", "herobanner"},
		{"rich_text", "rich_text"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.key))
		})
	}
}

func TestClassifierFirstRuleWins(t *testing.T) {
	c, err := NewClassifier([]Rule{
		{Pattern: "Media-Gallery", Category: "Gallery"},
		{Pattern: "media", Category: "media"},
	})
	require.NoError(t, err)

	assert.Equal(t, "gallery", c.Classify("media_gallery_3"))
	assert.Equal(t, "media", c.Classify("MediaImage"))
	assert.Equal(t, []Rule{
		{Pattern: "mediagallery", Category: "gallery"},
		{Pattern: "media", Category: "media"},
	}, c.Rules())
}

func TestNewClassifierValidation(t *testing.T) {
	_, err := NewClassifier([]Rule{{Pattern: "--", Category: "x"}})
	require.Error(t, err)

	_, err = NewClassifier([]Rule{{Pattern: "x"}})
	require.Error(t, err)
}

func TestTrackerRecordsFirstSeenCategories(t *testing.T) {
	tr := NewTracker(nil)

	tr.Record("Text")
	tr.Record("CustomEmbed-2")
	tr.Record("Image")
	tr.Record("CustomEmbed-1")
	tr.Record("text")

	assert.Equal(t, []string{"text", "customembed", "image"}, tr.Order())

	p, ok := tr.Position("CustomEmbed-1")
	assert.True(t, ok)
	assert.Equal(t, 1, p)
}

func TestTrackerCompare(t *testing.T) {
	tr := NewTracker(nil)
	tr.Record("image")
	tr.Record("CustomEmbed-1")

	assert.Equal(t, -1, tr.Compare("image", "CustomEmbed-9"))
	assert.Equal(t, 1, tr.Compare("CustomEmbed-9", "image"))
	assert.Equal(t, 0, tr.Compare("CustomEmbed-1", "CustomEmbed-2"))
	assert.Equal(t, -1, tr.Compare("image", "zeta"))
	assert.Equal(t, 1, tr.Compare("zeta", "image"))
	assert.Equal(t, -1, tr.Compare("alpha", "beta"))
	assert.Equal(t, 0, tr.Compare("alpha", "alpha"))
}

func TestTrackerSortIsStableWithinCategory(t *testing.T) {
	tr := NewTracker(nil)
	tr.Record("text")
	tr.Record("CustomEmbed-2")

	keys := []string{"CustomEmbed-2", "unknown_b", "text", "CustomEmbed-1", "unknown_a"}
	slices.SortStableFunc(keys, tr.Compare)

	assert.Equal(t, []string{"text", "CustomEmbed-2", "CustomEmbed-1", "unknown_a", "unknown_b"}, keys)
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker(nil)
	tr.Record("a")
	tr.Reset()

	assert.Empty(t, tr.Order())
	_, ok := tr.Position("a")
	assert.False(t, ok)
}
