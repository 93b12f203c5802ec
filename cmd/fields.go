package cmd

import (
	"fmt"

	"crm-sync/internal/crm"
	"crm-sync/internal/schema"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var fieldsEntity string

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Discover the selectable columns of an entity kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := fieldsEntity
		if name == "" {
			name = viper.GetString("sync.entity")
		}
		kind, err := crm.ParseEntityKind(name)
		if err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		fmt.Printf("📇 Discovering %s columns...\n", kind)

		ctx := cmd.Context()
		standard, err := client.Fields(ctx, kind)
		if err != nil {
			return err
		}
		custom, err := client.CustomFields(ctx, kind)
		if err != nil {
			return err
		}

		sample, err := client.Sample(ctx, kind, viper.GetInt("sync.filter_id"))
		if err != nil {
			return err
		}
		if sample == nil {
			fmt.Println("📭 Collection is empty; nothing to discover.")
			return nil
		}

		columns := schema.Discover(sample, append(standard, custom...))

		fmt.Printf("\nSelectable columns (%d):\n", len(columns))
		for i, col := range columns {
			suffix := ""
			if col.Nested {
				suffix = fmt.Sprintf("  (in %s)", col.Parent)
			}
			fmt.Printf("[%02d] %-44s %s%s\n", i+1, col.Key, col.Name, suffix)
		}
		fmt.Println("\nPut the paths you want under sync.columns in crm-sync.yaml.")

		return nil
	},
}

func init() {
	RootCmd.AddCommand(fieldsCmd)

	fieldsCmd.Flags().StringVar(&fieldsEntity, "entity", "", "Entity kind to inspect (default: sync.entity)")
}
