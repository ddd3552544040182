package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunQueryDir(t *testing.T) {
	dir := writeWorkspace(t)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	queryDB = ""
	queryIncludeDecl = false

	require.NoError(t, runQuery(cmd, []string{dir, "MAX"}))
	output := buf.String()
	assert.Contains(t, output, "MAX defined at")
	assert.Contains(t, output, "1 references")
}

func TestRunQueryFieldName(t *testing.T) {
	dir := writeWorkspace(t)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	queryDB = ""
	queryIncludeDecl = false

	// Field names have reference entries but no definition.
	require.NoError(t, runQuery(cmd, []string{dir, "payload"}))
	assert.Contains(t, buf.String(), "payload has no definition")
}

func TestRunQueryNotFound(t *testing.T) {
	dir := writeWorkspace(t)

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	queryDB = ""
	err := runQuery(cmd, []string{dir, "MISSING"})
	assert.ErrorContains(t, err, "name not found")
}

func TestRunQueryStore(t *testing.T) {
	dir := writeWorkspace(t)
	dbPath := filepath.Join(t.TempDir(), "index.db")

	indexFormat = "human"
	indexDB = dbPath
	saveCmd := &cobra.Command{}
	saveCmd.SetOut(&bytes.Buffer{})
	require.NoError(t, runIndex(saveCmd, []string{dir}))

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	queryDB = dbPath
	queryIncludeDecl = true
	require.NoError(t, runQuery(cmd, []string{"MAX"}))
	assert.Contains(t, buf.String(), "MAX defined at")

	// No name lists everything the store knows.
	buf.Reset()
	require.NoError(t, runQuery(cmd, nil))
	for _, name := range []string{"MAX", "MIN", "blob", "item", "payload"} {
		assert.Contains(t, buf.String(), name)
	}

	err := runQuery(cmd, []string{"too", "many"})
	assert.Error(t, err)
}
