package config

import (
	"reflect"
	"strings"

	"attendance-reconciler/core/loader"
	"attendance-reconciler/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ReconcileConfig holds defaults for the reconciliation run itself.
type ReconcileConfig struct {
	// Output is the report artifact path. A .csv extension writes CSV,
	// anything else an xlsx workbook.
	Output string `mapstructure:"output" default:"attendance_discrepancy_report.xlsx"`
	// MappingFile optionally points at a YAML mapping file with header
	// synonyms, per-source column overrides and value equivalence sets.
	MappingFile string `mapstructure:"mapping_file" default:""`
	// MaxSkipRatio is the tolerated fraction of skipped rows per table.
	MaxSkipRatio float64 `mapstructure:"max_skip_ratio" default:"0.5"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Loader holds configuration for source file loading.
	Loader loader.Config `mapstructure:"loader"`
	// Reconcile holds defaults for reconciliation runs.
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. LOG_LEVEL -> log.level)
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

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
