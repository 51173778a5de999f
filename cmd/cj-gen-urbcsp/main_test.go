package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cspjson "github.com/michal-dobrogost/csp-json"
)

func golden(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "urbcsp", "testdata", "n100d10c10t10s100i99k10.json"))
	require.NoError(t, err)
	return string(b)
}

func TestRun_Golden(t *testing.T) {
	want := golden(t)
	for _, args := range [][]string{
		{"100", "10", "10", "10", "100", "99"},
		{"100", "10", "10", "10", "100", "99", "10"},
		{"--quiet", "100", "10", "10", "10", "100", "99"},
	} {
		var stdout, stderr bytes.Buffer
		require.Equal(t, 0, run(args, &stdout, &stderr), "args %v: %s", args, stderr.String())
		assert.Equal(t, want, stdout.String())
		assert.Empty(t, stderr.String())
	}
}

func TestRun_NegativeSeed(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"5", "3", "4", "2", "-7", "0"}, &stdout, &stderr), stderr.String())

	var csp cspjson.Csp
	defer csp.Free()
	require.NoError(t, cspjson.Parse(stdout.Bytes(), &csp))
	assert.Equal(t, "urbcsp/n5d3c4t2s-7i0k4", csp.Meta.ID)
}

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"1", "2", "3"},
		{"100", "10", "10", "10", "100", "99", "10", "1"},
		{"100", "ten", "10", "10", "100", "99"},
		{"100", "10", "10", "10", "9999999999", "99"},
		{"100", "10", "10", "10", "100", "99", "0"},
		{"--no-such-flag"},
	} {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, exitUsage, run(args, &stdout, &stderr), "args %v", args)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Usage:")
	}
}

func TestRun_GenerationFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitGenerate, run([]string{"1", "10", "10", "10", "100", "99"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "generation failed")

	stderr.Reset()
	assert.Equal(t, exitGenerate, run([]string{"--quiet", "1", "10", "10", "10", "100", "99"}, &stdout, &stderr))
	assert.Empty(t, stderr.String())
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "classic.json")
	cfg := filepath.Join(dir, "runs.yaml")
	yaml := fmt.Sprintf(`runs:
  - {variables: 100, domainSize: 10, constraints: 10, noGoods: 10, seed: 100, instances: 99, output: %q}
  - {variables: 4, domainSize: 2, constraints: 2, noGoods: 1, seed: 1, instances: 0}
`, out)
	require.NoError(t, os.WriteFile(cfg, []byte(yaml), 0o644))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"--quiet", "--config", cfg}, &stdout, &stderr), stderr.String())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, golden(t), string(got))

	var csp cspjson.Csp
	defer csp.Free()
	require.NoError(t, cspjson.Parse(stdout.Bytes(), &csp))
	assert.Equal(t, "urbcsp/n4d2c2t1s1i0k2", csp.Meta.ID)
}

func TestRun_ConfigErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	assert.Equal(t, exitUsage, run([]string{"--config", missing}, &stdout, &stderr))
	assert.Equal(t, exitUsage, run([]string{"--config", missing, "1", "2", "3", "4", "5", "6"}, &stdout, &stderr))
}
