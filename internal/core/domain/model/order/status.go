package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// ErrIllegalStatusTransition is wrapped by every rejected status change.
var ErrIllegalStatusTransition = errs.NewConflictError("illegal fulfillment status transition")

// FulfillmentStatus is the lifecycle state of one shop's slice of an order.
// Each ShopOrder moves through it independently of the other shops.
//
// Transitions:
//
//	Waiting ──> Preparing ──> Pending ──> Accepted ──> Completed
//	   │  └────────┴─────────────┴──────────^ │ (forward skips allowed)
//	   └──────────────┬───────────────────────┘
//	                  v
//	               Rejected
//
// Progress is forward only. Rejected is reachable from every non-terminal state,
// Completed only from Accepted. Rejected and Completed are terminal.
type FulfillmentStatus int

const (
	// Unknown catches uninitialised values.
	Unknown FulfillmentStatus = iota
	Waiting
	Preparing
	Pending
	Accepted
	Rejected
	Completed
)

func getStatusStrings() map[FulfillmentStatus]string {
	return map[FulfillmentStatus]string{
		Unknown:   "unknown",
		Waiting:   "waiting",
		Preparing: "preparing",
		Pending:   "pending",
		Accepted:  "accepted",
		Rejected:  "rejected",
		Completed: "completed",
	}
}

// getTransitions lists, for every non-terminal status, the statuses it may move to.
func getTransitions() map[FulfillmentStatus][]FulfillmentStatus {
	//nolint:exhaustive // terminal and Unknown statuses have no outgoing edges
	return map[FulfillmentStatus][]FulfillmentStatus{
		Waiting:   {Preparing, Pending, Accepted, Rejected},
		Preparing: {Pending, Accepted, Rejected},
		Pending:   {Accepted, Rejected},
		Accepted:  {Completed, Rejected},
	}
}

// ParseFulfillmentStatus accepts the lower-case names used on the wire and in storage.
func ParseFulfillmentStatus(s string) (FulfillmentStatus, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid fulfillment status", s))
}

// AllStatuses returns the valid statuses in lifecycle order.
func AllStatuses() []FulfillmentStatus {
	return []FulfillmentStatus{Waiting, Preparing, Pending, Accepted, Rejected, Completed}
}

func (s FulfillmentStatus) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s FulfillmentStatus) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s FulfillmentStatus) IsTerminal() bool {
	return s == Rejected || s == Completed
}

// AllowsPickupTime reports whether a pickup time may be set in this status.
func (s FulfillmentStatus) AllowsPickupTime() bool {
	return s == Accepted || s == Completed
}

// TransitionTo validates the move from s to next and returns next.
// Re-asserting a non-terminal status is accepted as a no-op.
func (s FulfillmentStatus) TransitionTo(next FulfillmentStatus) (FulfillmentStatus, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if s == next && !s.IsTerminal() {
		return s, nil
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return next, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %s -> %s", ErrIllegalStatusTransition, s, next)
}
