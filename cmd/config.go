package cmd

import (
	"fmt"

	"crm-sync/internal/crm"
	"crm-sync/internal/engine"
	"crm-sync/internal/schema"

	"github.com/spf13/viper"
)

type SinkConfig struct {
	Name   string `mapstructure:"name"`
	Kind   string `mapstructure:"kind"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveSinkConfig returns the currently active sink configuration.
func GetActiveSinkConfig() (*SinkConfig, error) {
	var configs []SinkConfig

	if err := viper.UnmarshalKey("sinks", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse sinks config: %w", err)
	}

	var activeConfig *SinkConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active sink found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active sinks found (only one can be active)")
	}

	return activeConfig, nil
}

// newAPIClient builds the CRM client from viper (Flag > Config > Env).
func newAPIClient() (*crm.Client, error) {
	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		return nil, fmt.Errorf("api.base_url is required (via flag or config)")
	}
	return crm.NewClient(baseURL, viper.GetString("api.token")), nil
}

// syncConfigFromViper assembles the immutable engine configuration for one
// run. Everything is resolved here; the engine never touches viper.
func syncConfigFromViper() (engine.Config, error) {
	kind, err := crm.ParseEntityKind(viper.GetString("sync.entity"))
	if err != nil {
		return engine.Config{}, err
	}

	var columns []schema.ColumnSpec
	if err := viper.UnmarshalKey("sync.columns", &columns); err != nil {
		return engine.Config{}, fmt.Errorf("failed to parse sync.columns config: %w", err)
	}
	if len(columns) == 0 {
		return engine.Config{}, fmt.Errorf("no columns configured under sync.columns (run 'crm-sync fields' to list available paths)")
	}
	for i := range columns {
		if columns[i].Path == "" {
			return engine.Config{}, fmt.Errorf("sync.columns[%d] has no path", i)
		}
		if columns[i].Name == "" {
			columns[i].Name = columns[i].Path
		}
	}

	table := viper.GetString("sync.table")
	if table == "" {
		table = string(kind)
	}

	return engine.Config{
		Entity:   kind,
		FilterID: viper.GetInt("sync.filter_id"),
		Limit:    viper.GetInt("sync.limit"),
		Table:    table,
		Columns:  columns,
	}, nil
}
