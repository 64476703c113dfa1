package graph

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDefaultsDatabase(t *testing.T) {
	c, err := Open(Config{URI: "bolt://localhost:7687", Username: "neo4j", Password: "x"})
	require.NoError(t, err)
	defer c.Close(context.Background())

	assert.Equal(t, "neo4j", c.database)
}

func TestOpenInvalidURI(t *testing.T) {
	_, err := Open(Config{URI: "ftp://nowhere"})
	assert.Error(t, err)
}

func TestWaitReadyHonorsContext(t *testing.T) {
	// Nothing listens on port 1, so connectivity never succeeds.
	c, err := Open(Config{URI: "bolt://127.0.0.1:1", Username: "neo4j", Password: "x"})
	require.NoError(t, err)
	defer c.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err = c.WaitReady(ctx, 50*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
