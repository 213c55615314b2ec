package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "modfit"
)

type Config struct {
	DocumentsDir string    `mapstructure:"documents-dir"`
	Output       string    `mapstructure:"output"`
	AI           *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Provider       string        `mapstructure:"provider"`
	TimeoutSeconds int           `mapstructure:"timeout-seconds"`
	Gemini         *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey          string   `mapstructure:"api-key"`
	APIKeyFile      string   `mapstructure:"api-key-file"`
	Model           string   `mapstructure:"model"`
	Temperature     *float64 `mapstructure:"temperature"`
	MaxOutputTokens int32    `mapstructure:"max-output-tokens"`
	MaxLogLength    int      `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "modfit is a simple cli for ranking curriculum modules by personal fit",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is modfit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional, but a present-and-broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
