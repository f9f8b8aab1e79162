package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCorrectOrderCommandIsNotConstructed = errors.New(
	"CorrectOrderCommand must be created via NewCorrectOrderCommand constructor",
)

// CorrectedProduct is a full product line snapshot supplied by an administrator.
type CorrectedProduct struct {
	ProductID    string
	Slug         string
	Name         string
	SerialNumber string
	Manufacturer string
	Price        string
	Width        float64
	Height       float64
	Depth        float64
	Weight       float64
	Image        string
	Barcode      string
}

// CorrectedShop is a full shop slice snapshot supplied by an administrator.
// An empty Status means waiting.
type CorrectedShop struct {
	ShopID     string
	Slug       string
	Name       string
	Logo       string
	Type       string
	Status     string
	PickupTime string
	Products   []CorrectedProduct
}

// CorrectedLocation is a full address snapshot supplied by an administrator.
type CorrectedLocation struct {
	AddressID string
	Street    string
	Postal    string
	City      string
	Country   string
	Latitude  float64
	Longitude float64
}

// CorrectOrderCommand is an administrative patch of an order. A nil field is left
// untouched; a non-nil field replaces the stored value wholesale. The total is kept.
type CorrectOrderCommand struct { //nolint:recvcheck //using for validation
	number    order.Number
	currency  *kernel.Currency
	shops     []CorrectedShop
	locations []CorrectedLocation

	guard guard.ConstructorGuard
}

func NewCorrectOrderCommand(
	number string,
	currency *string,
	shops []CorrectedShop,
	locations []CorrectedLocation,
) (CorrectOrderCommand, error) {
	cmd := CorrectOrderCommand{
		shops:     shops,
		locations: locations,
		guard:     guard.NewConstructorGuard(),
	}

	parsedNumber, numberErr := order.NumberFromString(number)
	var currencyErr, emptyErr error
	if currency != nil {
		var c kernel.Currency
		if c, currencyErr = kernel.NewCurrency(*currency); currencyErr == nil {
			cmd.currency = &c
		}
	}
	if currency == nil && shops == nil && locations == nil {
		emptyErr = errs.NewValueIsRequiredError("currency, shops or locations")
	}
	if err := errors.Join(numberErr, currencyErr, emptyErr); err != nil {
		return CorrectOrderCommand{}, err
	}

	cmd.number = parsedNumber
	return cmd, nil
}

func (c CorrectOrderCommand) Validate() error {
	return c.guard.Validate(ErrCorrectOrderCommandIsNotConstructed)
}

func (c CorrectOrderCommand) Number() order.Number {
	return c.number
}

// Currency returns the replacement currency, or nil to keep the stored one.
func (c CorrectOrderCommand) Currency() *kernel.Currency {
	return c.currency
}

func (c CorrectOrderCommand) Shops() []CorrectedShop {
	return c.shops
}

func (c CorrectOrderCommand) Locations() []CorrectedLocation {
	return c.locations
}
