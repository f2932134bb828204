package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionRedemption(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{RedemptionPending, RedemptionFulfilled, true},
		{RedemptionPending, RedemptionCancelled, true},
		{RedemptionFulfilled, RedemptionCancelled, false},
		{RedemptionCancelled, RedemptionFulfilled, false},
		{RedemptionFulfilled, RedemptionPending, false},
		{RedemptionCancelled, RedemptionPending, false},
		{RedemptionPending, RedemptionPending, false},
		{RedemptionPending, "shipped", false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionRedemption(tt.from, tt.to))
		})
	}
}
