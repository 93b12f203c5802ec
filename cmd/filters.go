package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the saved filters available on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		filters, err := client.Filters(cmd.Context())
		if err != nil {
			return err
		}
		if len(filters) == 0 {
			fmt.Println("📭 No saved filters on the server.")
			return nil
		}

		fmt.Printf("Saved filters (%d):\n", len(filters))
		for _, f := range filters {
			fmt.Printf("[%4d] %-30s %s\n", f.ID, f.Name, f.Kind)
		}
		fmt.Println("\nPass one as --filter or set sync.filter_id.")

		return nil
	},
}

func init() {
	RootCmd.AddCommand(filtersCmd)
}
