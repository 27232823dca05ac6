package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables, .env files and flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Pipeline configuration
	SourceDir   string
	CleanDir    string
	MappingsDir string
	Threshold   float64
	Direction   string
	Provenance  bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// envPrefix namespaces pipeline settings, e.g. ROUTEMAP_SOURCE_DIR.
const envPrefix = "routemap"

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.routemap.yaml or ./.routemap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), "")
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	loadEnvFiles()

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("source_dir", constants.DefaultSourceDir)
	v.SetDefault("clean_dir", constants.DefaultCleanDir)
	v.SetDefault("mappings_dir", constants.DefaultMappingsDir)
	v.SetDefault("threshold", constants.DefaultMatchThreshold)
	v.SetDefault("direction", "to-source")
	v.SetDefault("provenance", true)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine unless one was asked for explicitly
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "reading config file", err)
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		SourceDir:   v.GetString("source_dir"),
		CleanDir:    v.GetString("clean_dir"),
		MappingsDir: v.GetString("mappings_dir"),
		Threshold:   v.GetFloat64("threshold"),
		Direction:   v.GetString("direction"),
		Provenance:  v.GetBool("provenance"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// Reload re-reads configuration from an explicit config file, keeping the
// flag-controlled values already set on c.
func (c *Config) Reload(configFile string) error {
	loaded, err := loadConfig(viper.New(), configFile)
	if err != nil {
		return err
	}
	loaded.Verbose, loaded.Quiet, loaded.NoColor, loaded.Format = c.Verbose, c.Quiet, c.NoColor, c.Format
	if c.LogLevel != "" {
		loaded.LogLevel = c.LogLevel
	}
	*c = *loaded
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is read first. godotenv never overrides a variable that is
// already set, so .env.local wins over .env and real environment variables
// win over both.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
