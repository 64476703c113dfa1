package neoctl

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommands(t *testing.T) {
	cmds, err := ParseCommands([]string{"destroy", "create", "start"})
	require.NoError(t, err)
	assert.Equal(t, []Command{CmdDestroy, CmdCreate, CmdStart}, cmds)

	_, err = ParseCommands([]string{"start", "restart"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.ErrorContains(t, err, `"restart"`)

	_, err = ParseCommands(nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestNeedsPassword(t *testing.T) {
	assert.True(t, NeedsPassword([]Command{CmdStop, CmdStart}))
	assert.True(t, NeedsPassword([]Command{CmdCreate}))
	assert.False(t, NeedsPassword([]Command{CmdStatus, CmdStop, CmdDestroy}))
}

func TestValidate(t *testing.T) {
	env := newTestEnv(t)

	noPassword := New(Settings{Root: env.root, ImportDirectory: env.importDir}, env.docker)
	assert.ErrorIs(t, noPassword.Validate([]Command{CmdStatus, CmdStart}), ErrPasswordRequired)
	assert.NoError(t, noPassword.Validate([]Command{CmdStatus, CmdStop, CmdDestroy}))

	require.NoError(t, os.RemoveAll(env.importDir))
	err := env.manager().Validate([]Command{CmdCreate})
	assert.ErrorIs(t, err, ErrMissingDirectory)
}

func TestRunAllValidatesFirst(t *testing.T) {
	env := newTestEnv(t)
	env.recordRunning(t, "abc", true)

	m := New(Settings{Root: env.root, ImportDirectory: env.importDir}, env.docker)
	err := m.RunAll(context.Background(), []Command{CmdStop, CmdStart}, false, WriteStatus)
	require.ErrorIs(t, err, ErrPasswordRequired)
	assert.Empty(t, env.docker.calls, "stop must not run when a later command is invalid")
}

func TestRunAllSequence(t *testing.T) {
	env := newTestEnv(t)
	env.writeImportFile(t, "nodes-Node.csv")
	env.recordRunning(t, "old", true)

	m := env.manager()
	cmds := []Command{CmdDestroy, CmdCreate, CmdStart, CmdStatus}
	require.NoError(t, m.RunAll(context.Background(), cmds, true, WriteStatus))

	var subs []string
	for _, c := range env.docker.calls {
		if c[0] != "inspect" {
			subs = append(subs, c[0])
		}
	}
	assert.Equal(t, []string{"stop", "pull", "run", "run"}, subs)
	assert.Contains(t, env.out.String(), "Destroyed neo4j instance and its data.")
	assert.Contains(t, env.out.String(), "Neo4j is running, container id is c0ffee.")
}

func TestRunAllStopsAtFirstFailure(t *testing.T) {
	env := newTestEnv(t)

	m := env.manager()
	err := m.RunAll(context.Background(), []Command{CmdCreate, CmdStart}, false, func(io.Writer, *Status) {})
	require.ErrorIs(t, err, ErrNoNodeFiles)
	assert.ErrorContains(t, err, "create:")
	assert.Nil(t, env.docker.lastCall("run"))
}
