package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"crm-sync/internal/mockcrm"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	mockAddr  string
	mockCount int
	mockSeed  int64
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve a local fake CRM API with generated data",
	RunE: func(cmd *cobra.Command, args []string) error {
		mockToken := viper.GetString("api.token")
		if mockToken == "" {
			mockToken = "mock-token"
		}

		srv := mockcrm.New(mockToken, mockCount, mockSeed)

		display := mockAddr
		if strings.HasPrefix(display, ":") {
			display = "localhost" + display
		}
		fmt.Printf("📇 Mock CRM listening on %s (%d records per collection, seed %d)\n", display, mockCount, mockSeed)
		fmt.Printf("Point the sync at it with --api-url http://%s --token %s\n", display, mockToken)

		return http.ListenAndServe(mockAddr, srv.Handler())
	},
}

func init() {
	RootCmd.AddCommand(mockCmd)

	mockCmd.Flags().StringVar(&mockAddr, "addr", ":8080", "Listen address")
	mockCmd.Flags().IntVar(&mockCount, "count", 250, "Records per collection")
	mockCmd.Flags().Int64Var(&mockSeed, "seed", 42, "Generation seed (same seed, same data)")
}
