package commands

import (
	"github.com/spf13/cobra"

	"github.com/hoardsec/hoard/internal/config"
	"github.com/hoardsec/hoard/internal/engine"
)

// NewEditCommand creates the edit command for metadata-only mutations:
// TTL changes and source-command changes, without re-fetching.
func NewEditCommand(cfg *config.Config) *cobra.Command {
	var (
		namespace string
		ttl       int64
		clearTTL  bool
		sourceSh  string
		sourceCmd string
	)

	cmd := &cobra.Command{
		Use:   "edit <secret>",
		Short: "Edit metadata of a cached secret (TTL, source command)",
		Long: `Change the TTL or the remembered source command of a cached secret
without invoking the source. The value and fetch time stay untouched;
a TTL change recomputes the expiry from the original fetch time.

Examples:
  # Expire an hour after it was fetched
  hoard edit -n myproject api-token --ttl 3600

  # Never expire again
  hoard edit -n myproject api-token --clear-ttl

  # Point at a different source for future refreshes
  hoard edit -n myproject db-password --source-sh "vault kv get -field=pw db"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := requireNamespace(cfg, namespace)
			if err != nil {
				return err
			}

			eng, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			var ttlSeconds *int64
			if cmd.Flags().Changed("ttl") {
				ttlSeconds = &ttl
			}

			err = eng.Edit(cmd.Context(), ns, args[0], engine.EditOptions{
				TTLSeconds: ttlSeconds,
				ClearTTL:   clearTTL,
				Source:     sourceOverride(sourceSh, sourceCmd),
			})
			if err != nil {
				return err
			}

			cfg.Logger.Info("Updated secret '%s' in namespace '%s'", args[0], ns)
			return nil
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace for the secret")
	cmd.Flags().Int64Var(&ttl, "ttl", 0, "New TTL in seconds")
	cmd.Flags().BoolVar(&clearTTL, "clear-ttl", false, "Remove TTL (secret will never expire)")
	cmd.Flags().StringVar(&sourceSh, "source-sh", "", "New source command (sh -c)")
	cmd.Flags().StringVar(&sourceCmd, "source-cmd", "", "New source command (direct)")

	cmd.MarkFlagsMutuallyExclusive("ttl", "clear-ttl")
	cmd.MarkFlagsMutuallyExclusive("source-sh", "source-cmd")

	return cmd
}
