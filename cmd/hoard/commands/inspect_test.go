package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/hoardsec/hoard/internal/errors"
	"github.com/hoardsec/hoard/internal/secret"
)

func TestInspectCommand_ShowsFullMetadata(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, NewGetCommand(cfg), "-n", "ns", "sec",
		"--source-sh", "echo inspected", "--ttl", "3600")
	require.NoError(t, err)

	output, err := runCommand(t, NewInspectCommand(cfg), "-n", "ns", "sec")
	require.NoError(t, err)

	var rec secret.Record
	require.NoError(t, json.Unmarshal([]byte(output), &rec))
	assert.Equal(t, "inspected", rec.Value)
	assert.Equal(t, "echo inspected", rec.SourceCommand)
	assert.Equal(t, secret.ModeShell, rec.SourceMode)
	require.NotNil(t, rec.TTLSeconds)
	assert.Equal(t, int64(3600), *rec.TTLSeconds)
	require.NotNil(t, rec.ExpiresAt)
}

func TestInspectCommand_OmitsUnsetFields(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, NewGetCommand(cfg), "-n", "ns", "sec", "--source-sh", "echo v")
	require.NoError(t, err)

	output, err := runCommand(t, NewInspectCommand(cfg), "-n", "ns", "sec")
	require.NoError(t, err)

	assert.NotContains(t, output, "ttl_seconds")
	assert.NotContains(t, output, "expires_at")
}

func TestInspectCommand_MissingIsNotFound(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, NewInspectCommand(cfg), "-n", "ns", "ghost")

	var notFound herrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
