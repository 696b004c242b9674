package testutil_test

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/qcl/pkg/lookup"
	"github.com/arthur-debert/qcl/pkg/snippet"
	"github.com/arthur-debert/qcl/pkg/testutil"
)

var _ lookup.Executor = (*testutil.FakeExecutor)(nil)

func TestNewTestEnvironment(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	assert.Equal(t, env.ConfigDir, os.Getenv("QCL_CONFIG_DIR"))
	assert.Equal(t, env.StateDir, os.Getenv("QCL_STATE_DIR"))
	assert.DirExists(t, env.HomeDir)

	path := env.WriteSnippets("snippets: []\n")
	assert.Equal(t, env.SnippetsPath(), path)
	assert.FileExists(t, path)
	assert.FileExists(t, env.WriteConfig(`mode = "cli"`))
}

func TestInputPipe(t *testing.T) {
	data, err := io.ReadAll(testutil.InputPipe(t, "line\n"))
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))

	data, err = io.ReadAll(testutil.EmptyInput(t))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFakeExecutor(t *testing.T) {
	boom := errors.New("boom")
	exec := testutil.NewFakeExecutor().
		SetRows("ls", snippet.Row{"a"}, snippet.Row{"b"}).
		SetError("false", boom)

	rows, err := exec.Run(context.Background(), "ls")
	require.NoError(t, err)
	assert.Equal(t, []snippet.Row{{"a"}, {"b"}}, rows)

	_, err = exec.Run(context.Background(), "false")
	assert.ErrorIs(t, err, boom)

	rows, err = exec.Run(context.Background(), "other")
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.Equal(t, 1, exec.Calls("ls"))
	assert.Equal(t, 3, exec.TotalCalls())
}
