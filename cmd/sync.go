package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"crm-sync/internal/engine"
	"crm-sync/internal/sink"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	entity    string
	filterID  int
	limit     int
	tableName string
	outFile   string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync one entity kind into the configured sink",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := syncConfigFromViper()
		if err != nil {
			return err
		}

		sinkCfg, err := resolveSinkConfig()
		if err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		fmt.Printf("📇 Syncing %s into %s sink (%s)\n", cfg.Entity, sinkCfg.Kind, sinkCfg.DSN)

		snk, err := sink.Open(sinkCfg.Kind, sinkCfg.DSN)
		if err != nil {
			return err
		}
		defer snk.Close()

		log.Printf("Starting sync of %s (filter=%d, limit=%d)...", cfg.Entity, cfg.FilterID, cfg.Limit)

		// Progress Bar
		uiprogress.Start()
		bar := uiprogress.AddBar(100).AppendCompleted().PrependElapsed()
		fetched := 0
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("Fetched %5d: ", fetched)
		})

		res, err := engine.Run(cmd.Context(), client, snk, cfg, func(n int) {
			fetched = n
			bar.Incr()
		})

		uiprogress.Stop()

		if err != nil {
			return err
		}

		if res.Empty {
			fmt.Println("📭 No records matched; wrote a header-only table.")
		}

		// Final Report
		fmt.Println("\n📊 Summary Report:")
		icon := "✓"
		statusDisplay := res.Status
		if res.Status == "VERIFIED_OK" {
			statusDisplay = "OK (Verified)"
		} else {
			icon = "!"
		}
		fmt.Printf("[%s] %-14s : fetched %d, written %d, verified %d - %s\n",
			icon, res.Entity, res.Fetched, res.Written, res.Verified, statusDisplay)
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Run ID: %s\n", res.RunID)
		log.Printf("Sync Done! Time Elapsed: %s", res.Duration)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)

	// CLI Flags
	syncCmd.Flags().StringVar(&entity, "entity", "", "Entity kind to sync (deals, persons, organizations, activities, leads)")
	syncCmd.Flags().IntVar(&filterID, "filter", 0, "Server-side filter id (0 = none)")
	syncCmd.Flags().IntVar(&limit, "limit", 0, "Maximum records to fetch (0 = all)")
	syncCmd.Flags().StringVar(&tableName, "table", "", "Destination table/sheet name (default: entity name)")
	syncCmd.Flags().StringVar(&outFile, "out", "", "Write to this file instead of the configured sink (.csv, .xlsx, .db)")

	viper.BindPFlag("sync.entity", syncCmd.Flags().Lookup("entity"))
	viper.BindPFlag("sync.filter_id", syncCmd.Flags().Lookup("filter"))
	viper.BindPFlag("sync.limit", syncCmd.Flags().Lookup("limit"))
	viper.BindPFlag("sync.table", syncCmd.Flags().Lookup("table"))
	viper.SetDefault("sync.entity", "deals")
}

// resolveSinkConfig prefers the --out shortcut over the configured sink list.
func resolveSinkConfig() (*SinkConfig, error) {
	if outFile != "" {
		kind, err := sinkKindForFile(outFile)
		if err != nil {
			return nil, err
		}
		return &SinkConfig{
			Name:   "CLI Wrapper",
			Kind:   kind,
			DSN:    outFile,
			Active: true,
		}, nil
	}
	return GetActiveSinkConfig()
}

func sinkKindForFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv", nil
	case ".xlsx":
		return "xlsx", nil
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite", nil
	}
	return "", fmt.Errorf("cannot tell sink kind from %q (expected .csv, .xlsx, .db or .sqlite)", path)
}
