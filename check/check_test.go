package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hguenther/smtrs/formatter"
	"github.com/hguenther/smtrs/internal/config"
	"github.com/hguenther/smtrs/internal/logic"
)

func newChecker(kind string) *Checker {
	return NewWithConfig(kind, config.Default(), logic.NewBuilder(), zap.NewNop())
}

const choiceShape = `
kind: choice
alts:
  ok: {kind: singleton, sort: Int}
  err: {kind: unit}
`

func TestLayout(t *testing.T) {
	t.Parallel()
	reports, err := newChecker(formatter.LayoutReport).RunSource("result.yaml", []byte(choiceShape))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "result.yaml", r.Source)
	assert.Equal(t, "choice of 2", r.Shape)
	paths := make([]string, len(r.Slots))
	for i, s := range r.Slots {
		paths[i] = s.Path
	}
	assert.Equal(t, []string{"$#err", "$#ok", "$.ok"}, paths)
}

func TestInvariant(t *testing.T) {
	t.Parallel()
	reports, err := newChecker(formatter.InvariantReport).RunSource("result.yaml", []byte(choiceShape))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, []string{"((_ at-most 1) x0 x1)", "((_ at-least 1) x0 x1)"}, r.Exprs)
	assert.Equal(t, "x2", r.Slots[2].Expr)
}

const mergeBundle = `-- left.yaml --
kind: vec
elems:
  - {kind: singleton, sort: Int}
  - {kind: bool}
-- right.yaml --
kind: vec
elems:
  - {kind: singleton, sort: Int}
  - {kind: bool}
  - {kind: singleton, sort: Real}
`

func TestMerge(t *testing.T) {
	t.Parallel()
	reports, err := newChecker(formatter.MergeReport).RunSource("join.txtar", []byte(mergeBundle))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	require.True(t, r.Merged)
	assert.Equal(t, 2, r.Shared)
	assert.Equal(t, 2, r.Ites)
	exprs := make([]string, len(r.Slots))
	for i, s := range r.Slots {
		exprs[i] = s.Expr
	}
	assert.Equal(t, []string{"(ite c x0 x2)", "(ite c x1 x3)", "x4"}, exprs)
	assert.Equal(t, "vec of 3", r.Shape)
}

func TestMergeIncompatible(t *testing.T) {
	t.Parallel()
	bundle := "-- left.yaml --\nkind: singleton\nsort: Int\n-- right.yaml --\nkind: bool\n"
	reports, err := newChecker(formatter.MergeReport).RunSource("join.txtar", []byte(bundle))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.False(t, reports[0].Merged)
	assert.Empty(t, reports[0].Slots)
}

func TestMergeNeedsBothSides(t *testing.T) {
	t.Parallel()
	_, err := newChecker(formatter.MergeReport).RunSource("join.txtar", []byte("-- left.yaml --\nkind: bool\n"))
	assert.ErrorContains(t, err, "right")

	_, err = newChecker(formatter.MergeReport).RunSource("plain.yaml", []byte("kind: bool\n"))
	assert.Error(t, err)
}

func TestBundleLayout(t *testing.T) {
	t.Parallel()
	reports, err := newChecker(formatter.LayoutReport).RunSource("join.txtar", []byte(mergeBundle))
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "join.txtar:left", reports[0].Source)
	assert.Equal(t, "join.txtar:right", reports[1].Source)
}

func TestNewReadsConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".smtrs.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("leaf_prefix: v\n"), 0o644))
	shapePath := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(shapePath, []byte(choiceShape), 0o644))

	c, err := New(formatter.InvariantReport, cfgPath, nil)
	require.NoError(t, err)
	reports, err := c.Run(shapePath)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "v2", reports[0].Slots[2].Expr)

	require.NoError(t, os.WriteFile(cfgPath, []byte("cond: \"\"\n"), 0o644))
	_, err = New(formatter.InvariantReport, cfgPath, nil)
	assert.Error(t, err)
}

func TestRunBadInput(t *testing.T) {
	t.Parallel()
	_, err := newChecker(formatter.LayoutReport).RunSource("bad.yaml", []byte("kind: list\n"))
	assert.ErrorContains(t, err, "bad.yaml")

	_, err = newChecker(formatter.LayoutReport).Run(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
