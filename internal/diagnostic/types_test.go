package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsAccumulate(t *testing.T) {
	var d Diagnostics

	d.AddInfo(CodeFieldSkipped, "null field removed", "page", "fieldMapping[2]")
	d.AddWarning(CodeDepthLimit, "depth limit reached", "page", "hero.blocks")
	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddError("BROKEN", "bad thing", "", "")
	assert.True(t, d.HasErrors())
	require.EqualError(t, d.Error(), "[BROKEN] bad thing")

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticError, all[0].Severity)
	assert.Equal(t, 1, d.Count(CodeFieldSkipped))
}

func TestDiagnosticsMerge(t *testing.T) {
	var a, b Diagnostics

	a.AddInfo(CodeGroupMerged, "merged 2 instances", "page", "")
	b.AddInfo(CodeGroupMerged, "merged 3 instances", "post", "")
	b.AddWarning(CodeEmptyCanonicalUID, "missing target uid", "", "")

	a.Merge(b)
	assert.Equal(t, 2, a.Count(CodeGroupMerged))
	assert.Len(t, a.Warnings, 1)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Code: CodeNodeSkipped, Message: "null node removed", Model: "page", Path: "hero.blocks[1]"}
	assert.Equal(t, "[page] hero.blocks[1]: [NODE_SKIPPED] null node removed", d.String())

	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
