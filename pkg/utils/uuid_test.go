package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Yerba Mate 1kg", "yerba-mate-1kg"},
		{"  Termo  Acero  ", "termo-acero"},
		{"Café & Azúcar", "caf-azcar"},
		{"UPPER case", "upper-case"},
		{"already-slugged", "already-slugged"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Slugify(tt.input), "input: %q", tt.input)
	}
}
