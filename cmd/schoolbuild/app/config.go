package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from flags, the
// environment, .env files and the config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Build output
	OutputDir string
	Bundle    string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// envPrefix namespaces every environment variable read through viper.
const envPrefix = "SCHOOLBUILD"

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. SCHOOLBUILD_* environment variables
//  3. .env files
//  4. Config file (.schoolbuild.yaml in the working or home directory)
//  5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv(envPrefix + "_CONFIG"))
}

func loadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("output_dir", "out")
	v.SetDefault("format", "")
	v.SetDefault("log_format", getEnvOrDefault("LOG_FORMAT", "auto"))
	v.SetDefault("log_output", getEnvOrDefault("LOG_OUTPUT", "stderr"))
	v.SetDefault("log_level", os.Getenv("LOG_LEVEL"))

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".schoolbuild")
	}

	// Read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color"),
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),
		OutputDir:  v.GetString("output_dir"),
		Bundle:     v.GetString("bundle"),
		LogLevel:   v.GetString("log_level"),
		LogFormat:  v.GetString("log_format"),
		LogOutput:  v.GetString("log_output"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Empty strings leave the loaded value in place.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env; neither overrides the real environment.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
