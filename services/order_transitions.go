package services

import (
	"fmt"
	"strings"

	"github.com/Hemachand25/FreshGrocery/entity"
)

// TransitionPolicy decides which vendor-order status changes are accepted.
type TransitionPolicy int

const (
	// PolicyLenient lets an owner set any known status from any state.
	PolicyLenient TransitionPolicy = iota
	// PolicyStrict additionally freezes DELIVERED and CANCELLED.
	PolicyStrict
	// PolicySequential additionally forbids moving backwards in the lifecycle.
	PolicySequential
)

func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lenient":
		return PolicyLenient, nil
	case "strict", "":
		return PolicyStrict, nil
	case "sequential":
		return PolicySequential, nil
	}
	return PolicyStrict, fmt.Errorf("transition policy %q: %w", s, ErrInvalidInput)
}

func (p TransitionPolicy) String() string {
	switch p {
	case PolicyLenient:
		return "lenient"
	case PolicyStrict:
		return "strict"
	case PolicySequential:
		return "sequential"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Check validates moving a vendor order from one status to another.
// Re-applying the current status is always accepted.
func (p TransitionPolicy) Check(from, to entity.VendorOrderStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%q: %w", to, ErrInvalidStatus)
	}
	if p == PolicyLenient || from == to {
		return nil
	}
	if from.Terminal() {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidTransition)
	}
	if p == PolicySequential && to != entity.VendorOrderCancelled && to.Rank() < from.Rank() {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidTransition)
	}
	return nil
}

// ParseVendorOrderStatus normalises user input such as "out_for_delivery".
func ParseVendorOrderStatus(s string) (entity.VendorOrderStatus, error) {
	st := entity.VendorOrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidStatus)
	}
	return st, nil
}

func ParseOrderStatus(s string) (entity.OrderStatus, error) {
	st := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidStatus)
	}
	return st, nil
}
