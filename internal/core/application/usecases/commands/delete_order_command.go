package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order with all of its shop slices.
type DeleteOrderCommand struct {
	number order.Number

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(number string) (DeleteOrderCommand, error) {
	parsed, err := order.NumberFromString(number)
	if err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{number: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) Number() order.Number {
	return c.number
}
