package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoardsec/hoard/internal/config"
)

// NewListCommand creates the list command, enumerating cached secrets
// from the listing index without touching the keyring.
func NewListCommand(cfg *config.Config) *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored secrets",
		Long: `List cached secrets as tab-separated lines of namespace, name and
creation time, in the order they were first stored.

The listing comes from hoard's index file and never opens the OS
credential store, so no unlock prompts are triggered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			var filter *string
			if namespace != "" {
				filter = &namespace
			}

			entries, err := eng.List(filter)
			if err != nil {
				return err
			}

			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					e.Namespace, e.Secret, e.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Filter by namespace")

	return cmd
}
