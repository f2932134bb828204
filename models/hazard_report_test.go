package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionStatus(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusActive, StatusInvestigating, true},
		{StatusActive, StatusResolved, true},
		{StatusInvestigating, StatusResolved, true},
		{StatusInvestigating, StatusActive, false},
		{StatusResolved, StatusActive, false},
		{StatusResolved, StatusInvestigating, false},
		{StatusActive, StatusActive, false},
		{StatusActive, "archived", false},
		{"", StatusResolved, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionStatus(tt.from, tt.to))
		})
	}
}

func TestValidHazardType(t *testing.T) {
	assert.True(t, ValidHazardType(HazardPothole))
	assert.True(t, ValidHazardType(HazardWaterlogging))
	assert.True(t, ValidHazardType(HazardOther))
	assert.False(t, ValidHazardType(""))
	assert.False(t, ValidHazardType("sinkhole"))
}
