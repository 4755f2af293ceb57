package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoardsec/hoard/internal/config"
)

// NewInspectCommand creates the inspect command, dumping a cached
// record with all its metadata.
func NewInspectCommand(cfg *config.Config) *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "inspect <secret>",
		Short: "Inspect a cached secret, showing full metadata as JSON",
		Long: `Print the full cached record for a secret as pretty JSON: the value,
when it was fetched, the remembered source command and mode, and any
TTL and expiry. Fields that are unset are omitted.`,
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

			rec, err := eng.Inspect(cmd.Context(), ns, args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace for the secret")

	return cmd
}
