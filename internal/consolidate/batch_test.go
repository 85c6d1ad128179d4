package consolidate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"content-migrator/internal/model"
)

func blocksModel(id string, blockUIDs ...string) model.ContentModel {
	blocks := make([]any, 0, len(blockUIDs))
	for _, u := range blockUIDs {
		blocks = append(blocks, map[string]any{"uid": u})
	}

	return model.ContentModel{
		ID:           id,
		TargetUID:    id,
		FieldMapping: []model.FieldMapping{{"uid": "f", "blocks": blocks}},
	}
}

func TestRunBatchKeepsInputOrderAndIsolatesTrackers(t *testing.T) {
	defer goleak.VerifyNone(t)

	inputs := [][]model.ContentModel{
		{blocksModel("a", "Beta", "Alpha")},
		{blocksModel("b", "Alpha", "Beta")},
		{blocksModel("c", "Gamma")},
	}

	results, err := Default().RunBatch(context.Background(), inputs, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "a", results[0].Models[0].ID)
	assert.Equal(t, []string{"beta", "alpha"}, results[0].TypeOrder)
	assert.Equal(t, []string{"alpha", "beta"}, results[1].TypeOrder)
	assert.Equal(t, []string{"gamma"}, results[2].TypeOrder)
}

func TestRunBatchMatchesSequentialRuns(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := Default()
	inputs := [][]model.ContentModel{loadModels(t, heroExport), loadModels(t, heroExport)}

	results, err := e.RunBatch(context.Background(), inputs, 0)
	require.NoError(t, err)

	want := e.Consolidate(loadModels(t, heroExport))
	for _, r := range results {
		assert.Equal(t, want.Models, r.Models)
		assert.Equal(t, want.TypeOrder, r.TypeOrder)
	}
}

func TestRunBatchCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Default().RunBatch(ctx, [][]model.ContentModel{{blocksModel("a", "X")}}, 1)
	require.ErrorIs(t, err, context.Canceled)
}
