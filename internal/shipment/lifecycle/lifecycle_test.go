package lifecycle

import (
	"errors"
	"testing"

	domainShipment "cargo-dispatch/internal/domain/shipment"
	appErrors "cargo-dispatch/pkg/errors"
)

func TestValidateTransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		from    domainShipment.Status
		to      domainShipment.Status
		allowed bool
	}{
		{"new to assigned", domainShipment.StatusNew, domainShipment.StatusAssigned, true},
		{"assigned to in_transit", domainShipment.StatusAssigned, domainShipment.StatusInTransit, true},
		{"assigned back to new", domainShipment.StatusAssigned, domainShipment.StatusNew, true},
		{"in_transit to delivered", domainShipment.StatusInTransit, domainShipment.StatusDelivered, true},
		{"in_transit back to assigned", domainShipment.StatusInTransit, domainShipment.StatusAssigned, true},

		{"new skips to delivered", domainShipment.StatusNew, domainShipment.StatusDelivered, false},
		{"new skips to in_transit", domainShipment.StatusNew, domainShipment.StatusInTransit, false},
		{"assigned skips to delivered", domainShipment.StatusAssigned, domainShipment.StatusDelivered, false},
		{"in_transit back to new", domainShipment.StatusInTransit, domainShipment.StatusNew, false},
		{"same state new", domainShipment.StatusNew, domainShipment.StatusNew, false},
		{"same state in_transit", domainShipment.StatusInTransit, domainShipment.StatusInTransit, false},
		{"unknown status", domainShipment.Status("LOST"), domainShipment.StatusNew, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(tc.from, tc.to)
			if tc.allowed && err != nil {
				t.Fatalf("expected %s -> %s to be allowed, got %v", tc.from, tc.to, err)
			}
			if !tc.allowed && err == nil {
				t.Fatalf("expected %s -> %s to be rejected", tc.from, tc.to)
			}
		})
	}
}

func TestDeliveredIsTerminal(t *testing.T) {
	targets := []domainShipment.Status{
		domainShipment.StatusNew,
		domainShipment.StatusAssigned,
		domainShipment.StatusInTransit,
		domainShipment.StatusDelivered,
	}

	for _, to := range targets {
		if err := ValidateTransition(domainShipment.StatusDelivered, to); err == nil {
			t.Fatalf("expected DELIVERED -> %s to be rejected", to)
		}
	}

	if got := AllowedTransitions(domainShipment.StatusDelivered); len(got) != 0 {
		t.Fatalf("expected no transitions out of DELIVERED, got %v", got)
	}
}

func TestTransitionErrorCarriesBothStates(t *testing.T) {
	err := ValidateTransition(domainShipment.StatusNew, domainShipment.StatusDelivered)
	if err == nil {
		t.Fatal("expected an error")
	}

	var te *appErrors.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected a TransitionError, got %T", err)
	}
	if te.From != "NEW" || te.To != "DELIVERED" {
		t.Fatalf("expected states NEW/DELIVERED, got %s/%s", te.From, te.To)
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []domainShipment.Status{
		domainShipment.StatusNew,
		domainShipment.StatusAssigned,
		domainShipment.StatusInTransit,
		domainShipment.StatusDelivered,
	} {
		if !IsValidStatus(s) {
			t.Fatalf("expected %s to be a valid status", s)
		}
	}
	if IsValidStatus(domainShipment.Status("CANCELLED")) {
		t.Fatal("expected CANCELLED to be unknown")
	}
}
