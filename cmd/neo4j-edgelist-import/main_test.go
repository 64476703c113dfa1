package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "edges.txt")
	require.NoError(t, os.WriteFile(input, []byte("a b KNOWS\nb a KNOWS\n"), 0644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--output-node-files", filepath.Join(dir, "nodes-NODE_LABEL.csv"),
		"--output-edge-files", filepath.Join(dir, "edges-EDGE_LABEL.csv"),
		"--sorted",
		input,
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "edges-KNOWS_Node_to_Node.csv"))
	require.NoError(t, err)
	assert.Equal(t, ":START_ID(Node),:END_ID(Node),:TYPE\na,b,KNOWS\nb,a,KNOWS\n", string(data))
}

func TestRootCmdMissingInput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.txt")})
	assert.ErrorContains(t, cmd.Execute(), "does not exist")
}

func TestRootCmdBadTemplate(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "edges.txt")
	require.NoError(t, os.WriteFile(input, []byte("a b KNOWS\n"), 0644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--output-node-files", filepath.Join(dir, "nodes.csv"), input})
	assert.ErrorContains(t, cmd.Execute(), "NODE_LABEL")
}
