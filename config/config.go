package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"

	// Content Generation Configuration.
	// All optional: without an API key the generator runs in disabled mode
	// and substitutes placeholder content instead of calling out.
	GrokAPIKey string `mapstructure:"GROK_API_KEY"` // Bearer credential for the completion endpoint
	GrokAPIURL string `mapstructure:"GROK_API_URL"` // OpenAI-compatible base URL (e.g., "https://api.groq.com/openai/v1")
	ModelID    string `mapstructure:"MODEL_ID"`     // Completion model identifier

	// Working Directory Configuration
	WorkDir string `mapstructure:"WORK_DIR"` // Root for per-request working trees
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)     // Path to look for the config file in
	viper.SetConfigName("config") // Name of config file (without extension)
	viper.SetConfigType("yaml")

	// Defaults double as key registrations so AutomaticEnv can fill them.
	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("GROK_API_KEY", "")
	viper.SetDefault("GROK_API_URL", "")
	viper.SetDefault("MODEL_ID", "llama3-8b-8192")
	viper.SetDefault("WORK_DIR", filepath.Join(os.TempDir(), "generator"))

	viper.AutomaticEnv() // Read environment variables that match keys

	err = viper.ReadInConfig()
	if err != nil {
		// Config file is optional; env vars alone are a valid setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.GrokAPIKey == "" {
		log.Println("WARN: GROK_API_KEY is not set. Content generation runs in disabled mode with placeholder output.")
	}

	return
}
