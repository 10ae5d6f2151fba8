package main

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SHEET_RECONCILER"

// Config holds the CLI settings resolved from, in order of precedence:
// command-line flags, environment variables, .env files, the config file
// (.sheetReconciler.yaml) and defaults.
type Config struct {
	ConfigFile  string
	Port        string
	LogLevel    string
	Format      string
	Workspace   string
	StorageMode string
	// Collision is the join collision policy of copy-mappings.
	Collision string
}

// LoadConfig resolves the configuration. Flags are bound by name, so a flag
// "log-level" is found as SHEET_RECONCILER_LOG_LEVEL and as log_level/log-level in the file.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	// Load .env files first (before Viper env binding), .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "5000")
	v.SetDefault("log-level", "warn")
	v.SetDefault("workspace", ".")
	v.SetDefault("storage-mode", "")
	v.SetDefault("collision", "keep_left")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".sheetReconciler")
		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	return &Config{
		ConfigFile:  v.ConfigFileUsed(),
		Port:        v.GetString("port"),
		LogLevel:    v.GetString("log-level"),
		Format:      v.GetString("format"),
		Workspace:   v.GetString("workspace"),
		StorageMode: v.GetString("storage-mode"),
		Collision:   v.GetString("collision"),
	}, nil
}
