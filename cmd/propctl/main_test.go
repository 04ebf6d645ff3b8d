package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Factories(t *testing.T) {
	config := writeFile(t, "config.yaml", "log:\n  level: silent\n")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"factories", "-config", config}, &out))

	var got factoriesOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.True(t, got.Frozen)
	assert.Len(t, got.Factories, 13)
	assert.Len(t, got.Fingerprint, 16)
}

func TestRun_Build(t *testing.T) {
	config := writeFile(t, "config.yaml", "log:\n  level: silent\n")
	doc := writeFile(t, "schema.yaml", `
properties:
  - name: level
    kind: int
    value: 12
    rules:
      max: 10
  - name: title
    kind: string
    value: hi
`)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"build", "-config", config, "-schema", doc}, &out))

	var reports []propertyReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, "level", reports[0].Name)
	assert.Equal(t, "int", reports[0].Type)
	assert.False(t, reports[0].Valid)
	assert.Len(t, reports[0].Errors, 1)

	assert.Equal(t, "title", reports[1].Name)
	assert.True(t, reports[1].Valid)
	assert.Equal(t, "hi", reports[1].Value)
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run(context.Background(), nil, &out), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"nope"}, &out), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"build"}, &out), errUsage)

	require.NoError(t, run(context.Background(), []string{"help"}, &out))
	assert.Contains(t, out.String(), "propctl")
}
