package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "Formato canônico YYYY-MM-DD",
			input:    "2024-01-05",
			expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Data com hora",
			input:    "2024-01-05 10:30:00",
			expected: time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "Formato com barras",
			input:    "2024/01/05",
			expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Formato brasileiro DD/MM/YYYY",
			input:    "05/01/2024",
			expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Espaços nas bordas são tolerados",
			input:    "  2024-01-05  ",
			expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Data vazia é erro",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Texto irreconhecível é erro",
			input:   "quinta-feira",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseFlexibleDate(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.True(t, tt.expected.Equal(parsed))
		})
	}
}
