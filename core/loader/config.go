package loader

// Config holds configuration for source file loading.
type Config struct {
	// BackendSheet is the preferred worksheet name of the backend export.
	BackendSheet string `mapstructure:"backend_sheet" default:"Qandle"`
	// ManualSheet is the preferred worksheet name of the manual file.
	ManualSheet string `mapstructure:"manual_sheet" default:"Attn"`
}
