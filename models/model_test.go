package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaturatingSub(t *testing.T) {
	tests := []struct {
		name  string
		value int
		delta int
		want  int
	}{
		{"normal decrement", 3, 1, 2},
		{"to exactly zero", 1, 1, 0},
		{"clamped at zero", 0, 1, 0},
		{"delta larger than value", 2, 5, 0},
		{"zero delta", 4, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SaturatingSub(tt.value, tt.delta))
		})
	}
}
