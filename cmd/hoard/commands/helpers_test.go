package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/hoardsec/hoard/internal/config"
	"github.com/hoardsec/hoard/internal/logging"
)

// testConfig swaps the OS keyring for an in-memory mock and points the
// listing index at a per-test file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	keyring.MockInit()
	return &config.Config{
		Logger: logging.New(false, true),
		Definition: &config.Definition{
			IndexPath: filepath.Join(t.TempDir(), "index.json"),
		},
	}
}

// runCommand executes a command with the given args and returns its
// captured stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
