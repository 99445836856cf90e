package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/poller"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "ghosthire"
	envPrefix = "GHOSTHIRE"
)

type Config struct {
	APIURL       string        `mapstructure:"api-url" validate:"required,url"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
	PollInterval time.Duration `mapstructure:"poll-interval" validate:"gt=0"`
	LogFile      string        `mapstructure:"log-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ghosthire checks job postings for ghost-job and scam signals using the GhostHire scoring service",
	}
)

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetDefault("api-url", ghosthire.DefaultAPIURL)
	viper.SetDefault("timeout", ghosthire.DefaultTimeout)
	viper.SetDefault("poll-interval", poller.DefaultInterval)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ghosthire.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("api-url", ghosthire.DefaultAPIURL, "base address of the scoring service")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		// An explicit config must be readable.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config == nil {
		return nil, errors.New("config is required")
	}

	if err := validator.New().Struct(config); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
