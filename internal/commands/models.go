package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/models"
)

// NewModelsCmd creates the models command
func NewModelsCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the supported models",
		Long: `List the models that can be selected on the configuration screen.
The stored model is marked with '*'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stored := ""
			if store, err := deps.OpenStore(); err == nil {
				if st, err := store.Load(); err == nil {
					stored = st.ModelName
				}
				store.Close()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, m := range models.AllModels() {
				mark := " "
				if m.Name == stored {
					mark = "*"
				}
				name := m.Name
				if m.Name == models.DefaultModel.Name {
					name += " (default)"
				}
				fmt.Fprintf(w, "%s %s\t%s\n", mark, name, m.DisplayName)
			}
			return w.Flush()
		},
	}
}
