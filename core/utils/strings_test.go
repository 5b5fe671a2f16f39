package utils_test

import (
	"testing"

	"attendance-reconciler/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Emp ID", "Emp ID"},
		{"surrounding", "  Emp ID  ", "Emp ID"},
		{"internal runs", "Emp \t ID", "Emp ID"},
		{"empty", "", ""},
		{"only whitespace", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.CollapseSpace(tt.in))
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "emp id", utils.Fold("  EMP \t Id "))
	assert.Equal(t, utils.Fold("Employee Code"), utils.Fold("employee  code"))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, utils.IsBlank("  \t"))
	assert.False(t, utils.IsBlank(" x "))
}

func TestAllBlank(t *testing.T) {
	assert.True(t, utils.AllBlank(nil))
	assert.True(t, utils.AllBlank([]string{"", "  ", "\t"}))
	assert.False(t, utils.AllBlank([]string{"", "x"}))
}
