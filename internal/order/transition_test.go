package order

import (
	"testing"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to model.OrderStatus
		want     bool
	}{
		{model.StatusPending, model.StatusApproved, true},
		{model.StatusPending, model.StatusRejected, true},
		{model.StatusPending, model.StatusMeasured, false},
		{model.StatusPending, model.StatusClaimed, false},
		{model.StatusApproved, model.StatusMeasured, true},
		{model.StatusApproved, model.StatusForPickup, false},
		{model.StatusMeasured, model.StatusForPickup, true},
		{model.StatusForPickup, model.StatusClaimed, true},
		{model.StatusForPickup, model.StatusForVerification, true},
		{model.StatusForVerification, model.StatusPaymentVerified, true},
		{model.StatusForVerification, model.StatusClaimed, false},
		{model.StatusPaymentVerified, model.StatusClaimed, true},
		{model.StatusRejected, model.StatusForVerification, true},
		{model.StatusRejected, model.StatusClaimed, false},
		{model.StatusClaimed, model.StatusRejected, false},
		{model.StatusClaimed, model.StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestClaimedIsTerminal(t *testing.T) {
	assert.Empty(t, transitions[model.StatusClaimed])
	assert.True(t, model.StatusClaimed.IsTerminal())
}
