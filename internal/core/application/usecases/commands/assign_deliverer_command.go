package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrAssignDelivererCommandIsNotConstructed = errors.New(
	"AssignDelivererCommand must be created via NewAssignDelivererCommand constructor",
)

// AssignDelivererCommand attaches a deliverer to an order.
type AssignDelivererCommand struct { //nolint:recvcheck //using for validation
	number      order.Number
	delivererID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDelivererCommand(number, delivererID string) (AssignDelivererCommand, error) {
	parsedNumber, numberErr := order.NumberFromString(number)
	parsedDeliverer, delivererErr := parseID("delivererId", delivererID)
	if err := errors.Join(numberErr, delivererErr); err != nil {
		return AssignDelivererCommand{}, err
	}

	return AssignDelivererCommand{
		number:      parsedNumber,
		delivererID: parsedDeliverer,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDelivererCommand) Validate() error {
	return c.guard.Validate(ErrAssignDelivererCommandIsNotConstructed)
}

func (c AssignDelivererCommand) Number() order.Number {
	return c.number
}

func (c AssignDelivererCommand) DelivererID() kernel.UUID {
	return c.delivererID
}
