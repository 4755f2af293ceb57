package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand_EmptyIndex(t *testing.T) {
	cfg := testConfig(t)

	output, err := runCommand(t, NewListCommand(cfg))

	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestListCommand_TabSeparatedInInsertionOrder(t *testing.T) {
	cfg := testConfig(t)

	for _, pair := range [][2]string{{"ns1", "first"}, {"ns2", "other"}, {"ns1", "second"}} {
		_, err := runCommand(t, NewGetCommand(cfg), "-n", pair[0], pair[1], "--source-sh", "echo v")
		require.NoError(t, err)
	}

	output, err := runCommand(t, NewListCommand(cfg))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ns1\tfirst\t"))
	assert.True(t, strings.HasPrefix(lines[1], "ns2\tother\t"))
	assert.True(t, strings.HasPrefix(lines[2], "ns1\tsecond\t"))
}

func TestListCommand_NamespaceFilter(t *testing.T) {
	cfg := testConfig(t)

	for _, pair := range [][2]string{{"ns1", "a"}, {"ns2", "b"}} {
		_, err := runCommand(t, NewGetCommand(cfg), "-n", pair[0], pair[1], "--source-sh", "echo v")
		require.NoError(t, err)
	}

	output, err := runCommand(t, NewListCommand(cfg), "-n", "ns2")
	require.NoError(t, err)

	assert.Contains(t, output, "ns2\tb")
	assert.NotContains(t, output, "ns1")
}

func TestListCommand_DeletedSecretsDisappear(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, NewGetCommand(cfg), "-n", "ns", "sec", "--source-sh", "echo v")
	require.NoError(t, err)
	_, err = runCommand(t, NewDeleteCommand(cfg), "-n", "ns", "sec")
	require.NoError(t, err)

	output, err := runCommand(t, NewListCommand(cfg))
	require.NoError(t, err)
	assert.Empty(t, output)
}
