package schema

import (
	"fmt"

	"github.com/spf13/viper"
)

// Mapping is the user-supplied reconciliation mapping file. It carries the
// engine's data-driven configuration surface: header synonyms, per-source
// explicit column overrides, and value equivalence sets.
//
// Example (YAML):
//
//	synonyms:
//	  employee_id: ["Emp ID", "Employee Code", "Personnel No"]
//	equivalence:
//	  - ["P", "Present"]
//	  - ["A", "Absent"]
//	overrides:
//	  backend:
//	    employee_id: "Code"
type Mapping struct {
	Synonyms    map[string][]string          `mapstructure:"synonyms"`
	Equivalence [][]string                   `mapstructure:"equivalence"`
	Overrides   map[string]map[string]string `mapstructure:"overrides"`
	DateLayouts []string                     `mapstructure:"date_layouts"`
}

// LoadMapping reads a mapping file (YAML, JSON or TOML, decided by
// extension) into a Mapping. A missing path returns an empty Mapping so
// callers can treat the file as optional.
func LoadMapping(path string) (*Mapping, error) {
	if path == "" {
		return &Mapping{}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	var m Mapping
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}
	return &m, nil
}

// ConfigFor builds the resolver config for one source, merging the
// mapping's synonyms over the defaults and applying that source's
// overrides. Extra CLI overrides win over the file's.
func (m *Mapping) ConfigFor(source string, cliOverrides map[string]string) Config {
	cfg := Config{DateLayouts: m.DateLayouts}

	if len(m.Synonyms) > 0 {
		merged := make(map[Field][]string, len(DefaultSynonyms))
		for field, syns := range DefaultSynonyms {
			merged[field] = syns
		}
		for name, syns := range m.Synonyms {
			merged[Field(name)] = syns
		}
		cfg.Synonyms = merged
	}

	overrides := make(map[Field]string)
	for field, label := range m.Overrides[source] {
		overrides[Field(field)] = label
	}
	for field, label := range cliOverrides {
		overrides[Field(field)] = label
	}
	if len(overrides) > 0 {
		cfg.Overrides = overrides
	}
	return cfg
}
