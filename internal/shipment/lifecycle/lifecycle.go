package lifecycle

import (
	domainShipment "cargo-dispatch/internal/domain/shipment"
	appErrors "cargo-dispatch/pkg/errors"
)

// State machine for shipment status transitions. Forward progress and
// one-step-back correction are both legal; DELIVERED is a sink.
var validTransitions = map[domainShipment.Status][]domainShipment.Status{
	domainShipment.StatusNew: {
		domainShipment.StatusAssigned,
	},
	domainShipment.StatusAssigned: {
		domainShipment.StatusInTransit,
		domainShipment.StatusNew, // Unassign and start over
	},
	domainShipment.StatusInTransit: {
		domainShipment.StatusDelivered,
		domainShipment.StatusAssigned, // Revert a transit
	},
	domainShipment.StatusDelivered: {
		// Terminal state - no transitions
	},
}

// ValidateTransition checks if a status transition is allowed. Same-state
// moves and unknown states are rejected like any other illegal transition.
func ValidateTransition(current, requested domainShipment.Status) error {
	allowed, exists := validTransitions[current]
	if !exists {
		return appErrors.NewTransitionError(string(current), string(requested))
	}

	for _, s := range allowed {
		if requested == s {
			return nil
		}
	}

	return appErrors.NewTransitionError(string(current), string(requested))
}

// AllowedTransitions returns the statuses reachable from current.
func AllowedTransitions(current domainShipment.Status) []domainShipment.Status {
	return validTransitions[current]
}

// IsValidStatus reports whether s is one of the known shipment statuses.
func IsValidStatus(s domainShipment.Status) bool {
	switch s {
	case domainShipment.StatusNew, domainShipment.StatusAssigned,
		domainShipment.StatusInTransit, domainShipment.StatusDelivered:
		return true
	}
	return false
}
