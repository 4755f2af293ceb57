package commands

import (
	"github.com/spf13/cobra"

	"github.com/hoardsec/hoard/internal/config"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "delete <secret>",
		Short: "Delete a secret from the keyring",
		Long: `Remove a cached secret from the OS credential store and the listing
index. Deleting a secret that does not exist is not an error.`,
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

			if err := eng.Delete(cmd.Context(), ns, args[0]); err != nil {
				return err
			}

			cfg.Logger.Info("Deleted secret '%s' from namespace '%s'", args[0], ns)
			return nil
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace for the secret")

	return cmd
}
