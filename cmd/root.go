package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "talent-scout"
)

type Config struct {
	Questions QuestionsConfig `mapstructure:"questions" json:"questions"`
	AI        AIConfig        `mapstructure:"ai" json:"ai"`
	Export    ExportConfig    `mapstructure:"export" json:"export"`
}

type QuestionsConfig struct {
	PerTech int  `mapstructure:"per-tech" json:"per-tech"`
	UseAI   bool `mapstructure:"use-ai" json:"use-ai"`
}

type AIConfig struct {
	Enabled         bool         `mapstructure:"enabled" json:"enabled"`
	Provider        string       `mapstructure:"provider" json:"provider"`
	MaxOutputTokens int          `mapstructure:"max-output-tokens" json:"max-output-tokens"`
	Temperature     float64      `mapstructure:"temperature" json:"temperature"`
	MaxLogLength    int          `mapstructure:"max-log-length" json:"max-log-length"`
	Gemini          GeminiConfig `mapstructure:"gemini" json:"gemini"`
	OpenAI          OpenAIConfig `mapstructure:"openai" json:"openai"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key" json:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file" json:"api-key-file"`
	Model      string `mapstructure:"model" json:"model"`
}

type OpenAIConfig struct {
	APIKey     string `mapstructure:"api-key" json:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file" json:"api-key-file"`
	Model      string `mapstructure:"model" json:"model"`
	BaseURL    string `mapstructure:"base-url" json:"base-url"`
}

type ExportConfig struct {
	Format string `mapstructure:"format" json:"format"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-scout is a cli screening assistant for technical candidates",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("TALENT_SCOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-scout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("questions.per-tech", 4)
	v.SetDefault("questions.use-ai", false)
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.max-output-tokens", 300)
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "")
	v.SetDefault("ai.openai.api-key", "")
	v.SetDefault("ai.openai.api-key-file", "")
	v.SetDefault("ai.openai.model", "")
	v.SetDefault("ai.openai.base-url", "")
	v.SetDefault("export.format", "json")
}

func initConfig() {
	// .env is optional, the process environment wins over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every key has a default, so only an explicit or malformed config is fatal.
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

// redacted returns a copy safe to log.
func (c Config) redacted() Config {
	if c.AI.Gemini.APIKey != "" {
		c.AI.Gemini.APIKey = "***"
	}
	if c.AI.OpenAI.APIKey != "" {
		c.AI.OpenAI.APIKey = "***"
	}
	return c
}
