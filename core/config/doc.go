// Package config provides configuration management for the reconciler.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: logging level and format
//   - Loader: preferred worksheet names per source
//   - Reconcile: report output path, mapping file, skip-ratio ceiling
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.Output)
package config
