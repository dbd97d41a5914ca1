package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Coordinates locates a city for the weather upstream.
type Coordinates struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// DatasetConfig points at the static JSON catalogs.
type DatasetConfig struct {
	Flights string `yaml:"flights"`
	Hotels  string `yaml:"hotels"`
	Places  string `yaml:"places"`
}

// WeatherConfig configures the weather service.
type WeatherConfig struct {
	BaseURL          string                 `yaml:"base_url"`
	MaxForecastDays  int                    `yaml:"max_forecast_days"`
	CacheTTLDays     int                    `yaml:"cache_ttl_days"`
	CityCoordinates  map[string]Coordinates `yaml:"city_coordinates"`
	SeasonalOutlooks map[string]string      `yaml:"seasonal_outlooks"`
}

// AgentConfig is the YAML configuration for the conversation agent.
type AgentConfig struct {
	Name     string        `yaml:"name"`
	Datasets DatasetConfig `yaml:"datasets"`
	Weather  WeatherConfig `yaml:"weather"`
}

// EnvConfig holds environment variables
type EnvConfig struct {
	// API Keys
	GoogleAPIKey string
	LLMAPIKey    string

	// LLM selection
	LLMProvider string
	LLMBaseURL  string
	LLMModel    string

	// Server Ports
	AgentPort int
	WSPort    int

	// Logging
	LogLevel  string
	LogFormat string

	// Config file location
	AgentConfigPath string
}

// LoadEnv loads environment variables
func LoadEnv() (*EnvConfig, error) {
	// Try to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	cfg := &EnvConfig{
		GoogleAPIKey: getEnv("GOOGLE_API_KEY", ""),
		LLMAPIKey:    getEnv("LLM_API_KEY", ""),

		LLMProvider: getEnv("LLM_PROVIDER", "openai-compatible"),
		LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
		LLMModel:    getEnv("LLM_MODEL", ""),

		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		AgentConfigPath: getEnv("AGENT_CONFIG_PATH", "configs/agent.yaml"),
	}

	cfg.AgentPort = getEnvInt("AGENT_PORT", 8080)
	cfg.WSPort = getEnvInt("WS_PORT", 8085)

	return cfg, nil
}

// LoadAgentConfig loads the agent configuration from YAML
func LoadAgentConfig(configPath string) (*AgentConfig, error) {
	if configPath == "" {
		configPath = "configs/agent.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Replace environment variables in the YAML
	configStr := expandEnvVars(string(data))

	var config AgentConfig
	if err := yaml.Unmarshal([]byte(configStr), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Weather.MaxForecastDays == 0 {
		config.Weather.MaxForecastDays = 10
	}
	if config.Weather.CacheTTLDays == 0 {
		config.Weather.CacheTTLDays = 1
	}
	if config.Weather.BaseURL == "" {
		config.Weather.BaseURL = "https://api.open-meteo.com/v1/forecast"
	}

	return &config, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func expandEnvVars(s string) string {
	// Replace ${VAR_NAME} with environment variable values
	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}
