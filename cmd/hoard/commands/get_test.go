package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoardsec/hoard/internal/config"
	herrors "github.com/hoardsec/hoard/internal/errors"
	"github.com/hoardsec/hoard/internal/logging"
)

func TestGetCommand_FetchStoreAndServeFromCache(t *testing.T) {
	cfg := testConfig(t)

	// A marker file counts how often the source actually runs.
	marker := filepath.Join(t.TempDir(), "marker")
	src := fmt.Sprintf("echo run >> %s; echo hello-e2e", marker)

	output, err := runCommand(t, NewGetCommand(cfg), "-n", "e2e", "greeting", "--source-sh", src)
	require.NoError(t, err)
	assert.Equal(t, "hello-e2e", output, "raw value with no trailing newline")

	// Second get: served from cache, source not invoked again.
	output, err = runCommand(t, NewGetCommand(cfg), "-n", "e2e", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello-e2e", output)

	runs, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(runs), "run"))
}

func TestGetCommand_ForceRefreshRerunsSource(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, NewGetCommand(cfg), "-n", "e2e", "sec", "--source-sh", "echo old-value")
	require.NoError(t, err)

	output, err := runCommand(t, NewGetCommand(cfg), "-n", "e2e", "sec",
		"--force-refresh", "--source-sh", "echo new-value")
	require.NoError(t, err)
	assert.Equal(t, "new-value", output)

	// The cached value is now the new one.
	output, err = runCommand(t, NewGetCommand(cfg), "-n", "e2e", "sec", "--no-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-value", output)
}

func TestGetCommand_NoRefreshOnEmptyCacheFails(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, NewGetCommand(cfg), "-n", "e2e", "missing", "--no-refresh")

	var notFound herrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetCommand_NoStoreLeavesNoTrace(t *testing.T) {
	cfg := testConfig(t)

	output, err := runCommand(t, NewGetCommand(cfg), "-n", "e2e", "ephemeral",
		"--source-sh", "echo ephemeral-value", "--no-store")
	require.NoError(t, err)
	assert.Equal(t, "ephemeral-value", output)

	// Not in the listing.
	listing, err := runCommand(t, NewListCommand(cfg), "-n", "e2e")
	require.NoError(t, err)
	assert.Empty(t, listing)

	// A plain get now has neither cache nor source.
	_, err = runCommand(t, NewGetCommand(cfg), "-n", "e2e", "ephemeral")
	var noSource herrors.NoSourceError
	require.ErrorAs(t, err, &noSource)
}

func TestGetCommand_SourceFailurePropagates(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, NewGetCommand(cfg), "-n", "e2e", "sec",
		"--source-sh", "echo nope >&2; exit 7")

	var srcErr herrors.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, 7, srcErr.ExitCode)
	assert.Equal(t, "nope", srcErr.Stderr)
}

func TestGetCommand_ConflictingRefreshFlags(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, NewGetCommand(cfg), "-n", "ns", "sec",
		"--force-refresh", "--no-refresh")

	require.Error(t, err)
}

func TestGetCommand_ConflictingSourceFlags(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, NewGetCommand(cfg), "-n", "ns", "sec",
		"--source-sh", "echo hi", "--source-cmd", "echo hi")

	require.Error(t, err)
}

func TestGetCommand_MissingNamespaceFails(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, NewGetCommand(cfg), "sec", "--source-sh", "echo hi")

	var usage herrors.UsageError
	require.ErrorAs(t, err, &usage)
}

func TestGetCommand_NamespaceFromConfigDefault(t *testing.T) {
	cfg := testConfig(t)
	cfg.Definition.DefaultNamespace = "from-config"

	output, err := runCommand(t, NewGetCommand(cfg), "sec", "--source-sh", "echo hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", output)

	listing, err := runCommand(t, NewListCommand(cfg))
	require.NoError(t, err)
	assert.Contains(t, listing, "from-config")
}

func TestGetCommand_MissingSecretNameFails(t *testing.T) {
	cfg := &config.Config{Logger: logging.New(false, true), Definition: &config.Definition{}}

	_, err := runCommand(t, NewGetCommand(cfg), "-n", "ns")

	require.Error(t, err)
}
