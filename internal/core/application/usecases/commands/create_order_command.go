package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one product line as submitted by the buyer.
type OrderLine struct {
	ProductID string
	ShopID    string
	Price     string
}

// CreateOrderLine is a parsed, validated OrderLine.
type CreateOrderLine struct {
	ProductID kernel.UUID
	ShopID    kernel.UUID
	Price     kernel.Money
}

// CreateOrderCommand represents a buyer checking out a cart that may span several shops.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(principal.UserID, "USD",
//	    []OrderLine{{ProductID: p1, ShopID: s1, Price: "10"}},
//	    []string{s1}, []string{a1})
//	if err != nil {
//	    return err // every invalid field is reported at once
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	buyerID    kernel.UUID
	currency   kernel.Currency
	lines      []CreateOrderLine
	shopIDs    []kernel.UUID
	addressIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand parses the raw request. The currency must be a three-letter
// code, there must be at least one line and one shop, prices must be positive
// decimals and every id must be a UUID.
func NewCreateOrderCommand(
	buyerID kernel.UUID,
	currency string,
	lines []OrderLine,
	shopIDs []string,
	addressIDs []string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setCurrency(currency),
		cmd.setLines(lines),
		cmd.setShopIDs(shopIDs),
		cmd.setAddressIDs(addressIDs),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

func (c CreateOrderCommand) Currency() kernel.Currency {
	return c.currency
}

func (c CreateOrderCommand) Lines() []CreateOrderLine {
	return append([]CreateOrderLine(nil), c.lines...)
}

func (c CreateOrderCommand) ShopIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.shopIDs...)
}

func (c CreateOrderCommand) AddressIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.addressIDs...)
}

func (c *CreateOrderCommand) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyer", err)
	}
	c.buyerID = id
	return nil
}

func (c *CreateOrderCommand) setCurrency(code string) error {
	currency, err := kernel.NewCurrency(code)
	if err != nil {
		return err
	}
	c.currency = currency
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("products")
	}

	var errList []error
	parsed := make([]CreateOrderLine, 0, len(lines))
	for i, line := range lines {
		productID, productErr := parseID(fmt.Sprintf("products[%d].id", i), line.ProductID)
		shopID, shopErr := parseID(fmt.Sprintf("products[%d].shopId", i), line.ShopID)
		price, priceErr := kernel.MoneyFromString(line.Price)
		if priceErr == nil && !price.IsPositive() {
			priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%q is not greater than 0", line.Price))
		}
		if priceErr != nil {
			priceErr = fmt.Errorf("products[%d]: %w", i, priceErr)
		}
		if err := errors.Join(productErr, shopErr, priceErr); err != nil {
			errList = append(errList, err)
			continue
		}
		parsed = append(parsed, CreateOrderLine{ProductID: productID, ShopID: shopID, Price: price})
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.lines = parsed
	return nil
}

func (c *CreateOrderCommand) setShopIDs(ids []string) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("shops")
	}
	parsed, err := parseIDs("shops", ids)
	if err != nil {
		return err
	}
	c.shopIDs = parsed
	return nil
}

func (c *CreateOrderCommand) setAddressIDs(ids []string) error {
	parsed, err := parseIDs("addresses", ids)
	if err != nil {
		return err
	}
	c.addressIDs = parsed
	return nil
}

func parseID(param, raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(param)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func parseIDs(param string, raw []string) ([]kernel.UUID, error) {
	var errList []error
	ids := make([]kernel.UUID, 0, len(raw))
	for i, s := range raw {
		id, err := parseID(fmt.Sprintf("%s[%d]", param, i), s)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		ids = append(ids, id)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return ids, nil
}
