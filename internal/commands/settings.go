package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/config"
)

const notSet = "(not set)"

// NewSettingsCmd creates the settings command
func NewSettingsCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or clear the stored API key and model",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored settings with the key masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := deps.OpenStore()
			if err != nil {
				return fmt.Errorf("failed to open settings: %w", err)
			}
			defer store.Close()

			st, err := store.Load()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:    %s\n", store.Path())
			fmt.Fprintf(out, "Model:   %s\n", orNotSet(st.ModelName))
			fmt.Fprintf(out, "API key: %s\n", orNotSet(config.MaskKey(st.APIKey)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key and model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := deps.OpenStore()
			if err != nil {
				return fmt.Errorf("failed to open settings: %w", err)
			}
			defer store.Close()

			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings cleared")
			return nil
		},
	})

	return cmd
}

func orNotSet(s string) string {
	if s == "" {
		return notSet
	}
	return s
}
