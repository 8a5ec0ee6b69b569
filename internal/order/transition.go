package order

import "github.com/fekuna/campus-uniform-service/internal/model"

// transitions lists every status change the state machine performs.
// Claimed has no outgoing edges.
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.StatusPending: {
		model.StatusApproved,
		model.StatusRejected,
	},
	model.StatusApproved: {
		model.StatusMeasured,
		model.StatusRejected,
	},
	model.StatusMeasured: {
		model.StatusForPickup,
		model.StatusRejected,
	},
	model.StatusForPickup: {
		model.StatusClaimed,
		model.StatusForVerification,
		model.StatusRejected,
	},
	model.StatusForVerification: {
		model.StatusPaymentVerified,
		model.StatusApproved,
		model.StatusRejected,
	},
	model.StatusPaymentVerified: {
		model.StatusApproved,
		model.StatusForPickup,
		model.StatusClaimed,
		model.StatusRejected,
	},
	model.StatusRejected: {
		model.StatusForVerification,
		model.StatusApproved,
	},
}

func CanTransition(from, to model.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DirectStatuses are the targets accepted by an explicit status update.
// Rejected and Measured carry their own payloads and have dedicated operations.
var DirectStatuses = []model.OrderStatus{
	model.StatusApproved,
	model.StatusForPickup,
	model.StatusClaimed,
}
