package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	apiURL  string
	token   string
)

var RootCmd = &cobra.Command{
	Use:   "crm-sync",
	Short: "A CRM-to-table synchronization tool",
	Long: `
  ____  ____   __  __     ____  __   __ _   _   ____
 / ___||  _ \ |  \/  |   / ___| \ \ / /| \ | | / ___|
| |    | |_) || |\/| |   \___ \  \ V / |  \| || |
| |___ |  _ < | |  | |    ___) |  | |  | |\  || |___
 \____||_| \_\|_|  |_|   |____/   |_|  |_| \_| \____|

CRM SYNC 📇 - CRM Data Exporter & Table Pumper
`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./crm-sync.yaml)")
	RootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "CRM API base URL")
	RootCmd.PersistentFlags().StringVar(&token, "token", "", "CRM API token")

	// Bind api flags to viper
	viper.BindPFlag("api.base_url", RootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("api.token", RootCmd.PersistentFlags().Lookup("token"))

	// Set default for Viper (fallback if no config/flag)
	viper.SetDefault("api.base_url", "http://localhost:8080")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("crm-sync")
		viper.SetConfigType("yaml")
	}

	// CRM_SYNC_API_TOKEN overrides api.token, and so on
	viper.SetEnvPrefix("CRM_SYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
