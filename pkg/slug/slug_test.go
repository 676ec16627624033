package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"kanbanState", "kanban-state"},
		{"My Board", "my-board"},
		{"  --Sprint 42 / Q3--  ", "sprint-42-q3"},
		{"v2Board", "v2-board"},
		{"HTTPServer", "httpserver"},
		{"äöü", "board"},
		{"", "board"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}

func TestGenerateTruncates(t *testing.T) {
	got := Generate(strings.Repeat("ab-", 40))
	assert.LessOrEqual(t, len(got), maxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}
