package cmd

import (
	"fmt"
	"log"

	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/logger"
	"github.com/spigell/ghosthire/internal/odometer"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var locCmd = &cobra.Command{
	Use:   "loc",
	Short: "Print the lines of code counter reported by the service",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		client := ghosthire.New(ghosthire.Config{APIURL: config.APIURL, Timeout: config.Timeout}, logger)

		counter, err := client.Loc(cmd.Context())
		if err != nil {
			logger.Fatal("fetching loc counter", zap.String("reason", ghosthire.UserMessage(err)), zap.Error(err))
		}

		fmt.Println(odometer.String(counter.TotalLoc))
		logger.Debug("loc counter",
			zap.Int("backend", counter.BackendLoc),
			zap.Int("frontend", counter.FrontendLoc),
			zap.Int("total", counter.TotalLoc),
		)
	},
}

func init() {
	rootCmd.AddCommand(locCmd)
}
