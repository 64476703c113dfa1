package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systemshift/neo4j-db-utils/internal/neoctl"
)

func TestCommandTree(t *testing.T) {
	for _, name := range []string{"create", "start", "stop", "status", "destroy", "run", "version"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}

func TestWriteStatus(t *testing.T) {
	var buf bytes.Buffer
	writeStatus(&buf, &neoctl.Status{Root: "/r", RootExists: true, Running: true, ContainerID: "abc"})
	assert.Contains(t, buf.String(), "Neo4j is running, container id is abc.")

	buf.Reset()
	writeStatus(&buf, &neoctl.Status{Root: "/r"})
	assert.Contains(t, buf.String(), "Root directory for Neo4j install /r does not exist.")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, "Nodes", map[string]int64{"Paper": 2, "Keyword": 1})

	out := buf.String()
	assert.Contains(t, out, "Nodes")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Keyword")), bytes.Index(buf.Bytes(), []byte("Paper")))

	buf.Reset()
	writeTable(&buf, "Relationships", nil)
	assert.Contains(t, buf.String(), "none")
}
