package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hguenther/smtrs/formatter"
	"github.com/hguenther/smtrs/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	jsonOutput, outPath, cacheDir, watch = false, "", "", false
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	out, err := execute(t, "--config", path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created/updated: "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "absent.yaml")
	shapePath := writeFile(t, dir, "pair.yaml", "kind: pair\nfirst: {kind: bool}\nsecond: {kind: singleton, sort: Int}\n")

	out, err := execute(t, "--config", cfgPath, "layout", shapePath)
	require.NoError(t, err)

	expected := `layout: pair
 --> ` + shapePath + `
  |
0 | $.first   Bool
1 | $.second  Int
  = 2 leaves

`
	assert.Equal(t, expected, out)
}

func TestInvariantCommandJSON(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "cfg.yaml", "leaf_prefix: s\n")
	shapePath := writeFile(t, dir, "choice.yaml", "kind: choice\nalts:\n  a: {kind: bool}\n  b: {kind: bool}\n")
	outFile := filepath.Join(dir, "out.json")

	out, err := execute(t, "--config", cfgPath, "invariant", "--json", "-o", outFile, shapePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Reports written to "+outFile)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var reports []formatter.Report
	require.NoError(t, json.Unmarshal(data, &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, []string{"((_ at-most 1) s0 s2)", "((_ at-least 1) s0 s2)"}, reports[0].Exprs)
}

func TestMergeCommandPair(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "cfg.yaml", "cond: branch\n")
	left := writeFile(t, dir, "left.yaml", "kind: option\nvalue: {kind: singleton, sort: Int}\n")
	right := writeFile(t, dir, "right.yaml", "kind: option\n")

	out, err := execute(t, "--config", cfgPath, "merge", left, right)
	require.NoError(t, err)
	assert.Contains(t, out, "merge: option (some)")
	assert.Contains(t, out, "0 | $?  Int  x0")
	assert.Contains(t, out, "merged: 1 leaves, 0 shared, 0 ite")
}

func TestMergeCommandBundle(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "absent.yaml")
	bundle := writeFile(t, dir, "join.txtar", `-- left.yaml --
kind: singleton
sort: Int
-- right.yaml --
kind: singleton
sort: Int
`)

	out, err := execute(t, "--config", cfgPath, "merge", bundle)
	require.NoError(t, err)
	assert.Contains(t, out, "(ite c x0 x1)")

	bad := writeFile(t, dir, "bad.txtar", "-- left.yaml --\nkind: bool\n-- right.yaml --\nkind: unit\n")
	out, err = execute(t, "--config", cfgPath, "merge", bad)
	require.NoError(t, err)
	assert.Contains(t, out, "incompatible shapes: states kept separate")
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "absent.yaml")

	_, err := execute(t, "--config", cfgPath, "layout", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = execute(t, "--config", cfgPath, "layout")
	assert.Error(t, err)

	badCfg := writeFile(t, dir, "bad.yaml", "cond: \"\"\n")
	_, err = execute(t, "--config", badCfg, "layout", badCfg)
	assert.Error(t, err)

	left := writeFile(t, dir, "l.yaml", "kind: list\n")
	_, err = execute(t, "--config", cfgPath, "merge", left, left)
	assert.True(t, err != nil && strings.Contains(err.Error(), "left"))
}

func TestLayoutCommandCache(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "absent.yaml")
	cache := filepath.Join(dir, "cache")
	shapePath := writeFile(t, dir, "b.yaml", "kind: bool\n")

	first, err := execute(t, "--config", cfgPath, "layout", "--cache-dir", cache, shapePath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cache, "report_cache.gob"))

	second, err := execute(t, "--config", cfgPath, "layout", "--cache-dir", cache, shapePath)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWatchDirs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "kind: bool\n")
	b := writeFile(t, dir, "b.yaml", "kind: bool\n")
	assert.Equal(t, []string{dir}, watchDirs([]string{a, b, dir}))
}
