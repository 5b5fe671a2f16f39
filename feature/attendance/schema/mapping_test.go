package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.yaml")
	content := `
synonyms:
  employee_id: ["Personnel No", "Emp ID"]
equivalence:
  - ["P", "Present"]
  - ["A", "Absent", "AB"]
overrides:
  backend:
    value: "Day Status"
date_layouts:
  - "2006/01/02"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := LoadMapping(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Personnel No", "Emp ID"}, m.Synonyms["employee_id"])
	assert.Equal(t, [][]string{{"P", "Present"}, {"A", "Absent", "AB"}}, m.Equivalence)
	assert.Equal(t, "Day Status", m.Overrides["backend"]["value"])
	assert.Equal(t, []string{"2006/01/02"}, m.DateLayouts)
}

func TestLoadMapping_EmptyPath(t *testing.T) {
	m, err := LoadMapping("")
	require.NoError(t, err)
	assert.Empty(t, m.Equivalence)
}

func TestLoadMapping_MissingFile(t *testing.T) {
	_, err := LoadMapping(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestMapping_ConfigFor(t *testing.T) {
	m := &Mapping{
		Synonyms: map[string][]string{"employee_id": {"Personnel No"}},
		Overrides: map[string]map[string]string{
			"backend": {"value": "Day Status"},
		},
	}

	cfg := m.ConfigFor("backend", map[string]string{"date": "When"})

	// File synonyms replace that field's set, defaults remain for the rest.
	assert.Equal(t, []string{"Personnel No"}, cfg.Synonyms[FieldEmployeeID])
	assert.Equal(t, DefaultSynonyms[FieldDate], cfg.Synonyms[FieldDate])

	// File overrides apply per source, CLI overrides win on conflict.
	assert.Equal(t, "Day Status", cfg.Overrides[FieldValue])
	assert.Equal(t, "When", cfg.Overrides[FieldDate])

	// Other sources do not inherit backend overrides.
	manual := m.ConfigFor("manual", nil)
	assert.Empty(t, manual.Overrides)
}
