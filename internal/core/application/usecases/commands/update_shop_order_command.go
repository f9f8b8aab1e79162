package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateShopOrderCommandIsNotConstructed = errors.New(
	"UpdateShopOrderCommand must be created via NewUpdateShopOrderCommand constructor",
)

// UpdateShopOrderCommand changes one shop's slice of an order: its fulfillment
// status, its pickup time, or both. At least one of them is set.
type UpdateShopOrderCommand struct { //nolint:recvcheck //using for validation
	number     order.Number
	shopID     kernel.UUID
	status     *order.FulfillmentStatus
	pickupTime *string

	guard guard.ConstructorGuard
}

func NewUpdateShopOrderCommand(number, shopID string, status, pickupTime *string) (UpdateShopOrderCommand, error) {
	cmd := UpdateShopOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	var missing error
	if status == nil && pickupTime == nil {
		missing = errs.NewValueIsRequiredError("status or pickupTime")
	}

	if err := errors.Join(
		cmd.setNumber(number),
		cmd.setShopID(shopID),
		cmd.setStatus(status),
		cmd.setPickupTime(pickupTime),
		missing,
	); err != nil {
		return UpdateShopOrderCommand{}, err
	}

	return cmd, nil
}

// NewSetShopStatusCommand updates the status only.
func NewSetShopStatusCommand(number, shopID, status string) (UpdateShopOrderCommand, error) {
	return NewUpdateShopOrderCommand(number, shopID, &status, nil)
}

// NewSetPickupTimeCommand updates the pickup time only.
func NewSetPickupTimeCommand(number, shopID, pickupTime string) (UpdateShopOrderCommand, error) {
	return NewUpdateShopOrderCommand(number, shopID, nil, &pickupTime)
}

func (c UpdateShopOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShopOrderCommandIsNotConstructed)
}

func (c UpdateShopOrderCommand) Number() order.Number {
	return c.number
}

func (c UpdateShopOrderCommand) ShopID() kernel.UUID {
	return c.shopID
}

// Status reports the requested status, if any.
func (c UpdateShopOrderCommand) Status() (order.FulfillmentStatus, bool) {
	if c.status == nil {
		return order.Unknown, false
	}
	return *c.status, true
}

// PickupTime reports the requested pickup time, if any.
func (c UpdateShopOrderCommand) PickupTime() (string, bool) {
	if c.pickupTime == nil {
		return "", false
	}
	return *c.pickupTime, true
}

func (c *UpdateShopOrderCommand) setNumber(raw string) error {
	number, err := order.NumberFromString(raw)
	if err != nil {
		return err
	}
	c.number = number
	return nil
}

func (c *UpdateShopOrderCommand) setShopID(raw string) error {
	id, err := parseID("shopId", raw)
	if err != nil {
		return err
	}
	c.shopID = id
	return nil
}

func (c *UpdateShopOrderCommand) setStatus(raw *string) error {
	if raw == nil {
		return nil
	}
	status, err := order.ParseFulfillmentStatus(*raw)
	if err != nil {
		return err
	}
	c.status = &status
	return nil
}

func (c *UpdateShopOrderCommand) setPickupTime(raw *string) error {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return errs.NewValueIsRequiredError("pickupTime")
	}
	c.pickupTime = &value
	return nil
}
