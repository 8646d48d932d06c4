package config

import (
	"reflect"
	"strings"

	"db-compare/core/logger"
	"db-compare/core/server"
	"db-compare/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage that archives reports.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Output controls where reports are written.
	Output OutputConfig `mapstructure:"output"`
	// Compare tunes the comparison engine.
	Compare CompareConfig `mapstructure:"compare"`
}

// OutputConfig holds report output settings.
type OutputConfig struct {
	// Dir is the root folder; each batch writes into a timestamped folder below it.
	Dir string `mapstructure:"dir" default:"output"`
	// Upload copies every written report file to object storage.
	Upload bool `mapstructure:"upload" default:"false"`
	// Prefix is the object key prefix of uploaded reports.
	Prefix string `mapstructure:"prefix" default:"reports"`
}

// CompareConfig holds engine settings.
type CompareConfig struct {
	// Workers is the number of diff workers, 0 for one per CPU.
	Workers int `mapstructure:"workers" default:"0"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. OUTPUT_DIR -> output.dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
