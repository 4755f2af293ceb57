package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoardsec/hoard/internal/config"
	"github.com/hoardsec/hoard/internal/engine"
)

// NewGetCommand creates the get command, the main entry point of the
// cache: serve the stored value or re-fetch it from its source.
func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		namespace    string
		forceRefresh bool
		noRefresh    bool
		noStore      bool
		ttl          int64
		sourceSh     string
		sourceCmd    string
	)

	cmd := &cobra.Command{
		Use:   "get <secret>",
		Short: "Get a secret, fetching from source if needed",
		Long: `Retrieve a secret value, invoking its source command when the cache
has no fresh copy.

Only the raw value is printed, with no trailing newline, making the
command suitable for scripting.

Examples:
  # First fetch: provide the source command
  hoard get -n myproject db-password --source-sh "op read op://vault/db/password"

  # Later fetches reuse the remembered source automatically
  hoard get -n myproject db-password

  # Cache an hour at a time
  hoard get -n myproject api-token --ttl 3600 --source-cmd "gcloud auth print-access-token"

  # Use in scripts
  export DB_PASSWORD=$(hoard get -n myproject db-password)`,
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

			value, err := eng.Get(cmd.Context(), ns, args[0], engine.GetOptions{
				ForceRefresh: forceRefresh,
				NoRefresh:    noRefresh,
				NoStore:      noStore,
				TTLSeconds:   ttlSeconds,
				Source:       sourceOverride(sourceSh, sourceCmd),
			})
			if err != nil {
				return err
			}

			// Raw value only, no newline.
			fmt.Fprint(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace for the secret")
	cmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "Force refresh from source even if cached")
	cmd.Flags().BoolVar(&noRefresh, "no-refresh", false, "Only return cached value, never refresh")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Don't store the fetched secret in the keyring")
	cmd.Flags().Int64Var(&ttl, "ttl", 0, "TTL in seconds for the cached secret")
	cmd.Flags().StringVar(&sourceSh, "source-sh", "", "Source command to run via sh -c")
	cmd.Flags().StringVar(&sourceCmd, "source-cmd", "", "Source command to run directly")

	cmd.MarkFlagsMutuallyExclusive("force-refresh", "no-refresh")
	cmd.MarkFlagsMutuallyExclusive("source-sh", "source-cmd")

	return cmd
}
