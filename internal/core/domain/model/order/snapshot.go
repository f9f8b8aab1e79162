package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Dimensions is the physical size of a product at order time.
type Dimensions struct {
	Width  float64
	Height float64
	Depth  float64
	Weight float64
}

// ProductOrder is an immutable snapshot of one product line as it looked when the
// order was placed. Later catalog edits never reach it.
//
// The price is the one the buyer submitted for this line, expressed in the
// currency of the enclosing order.
type ProductOrder struct {
	productID    kernel.UUID
	slug         string
	name         string
	serialNumber string
	manufacturer string
	price        kernel.Money
	currency     kernel.Currency
	dimensions   Dimensions
	image        string
	barcode      string
}

// ProductOrderParams groups the snapshot fields of a product line.
type ProductOrderParams struct {
	ProductID    kernel.UUID
	Slug         string
	Name         string
	SerialNumber string
	Manufacturer string
	Price        kernel.Money
	Currency     kernel.Currency
	Dimensions   Dimensions
	Image        string
	Barcode      string
}

// NewProductOrder validates and freezes a product line.
//
// Rules:
//   - ProductID and Currency must be constructed
//   - Price must be greater than zero
//   - Name must not be blank
//   - Dimensions must not be negative
func NewProductOrder(p ProductOrderParams) (ProductOrder, error) {
	var dimErr error
	if p.Dimensions.Width < 0 || p.Dimensions.Height < 0 || p.Dimensions.Depth < 0 || p.Dimensions.Weight < 0 {
		dimErr = errs.NewValueIsInvalidError("dimensions")
	}
	var nameErr error
	if strings.TrimSpace(p.Name) == "" {
		nameErr = errs.NewValueIsRequiredError("product name")
	}
	priceErr := p.Price.Validate()
	if priceErr == nil && !p.Price.IsPositive() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", p.Price))
	}
	if err := errors.Join(
		p.ProductID.Validate(),
		priceErr,
		p.Currency.Validate(),
		nameErr,
		dimErr,
	); err != nil {
		return ProductOrder{}, err
	}

	return ProductOrder{
		productID:    p.ProductID,
		slug:         p.Slug,
		name:         p.Name,
		serialNumber: p.SerialNumber,
		manufacturer: p.Manufacturer,
		price:        p.Price,
		currency:     p.Currency,
		dimensions:   p.Dimensions,
		image:        p.Image,
		barcode:      p.Barcode,
	}, nil
}

func (p ProductOrder) ProductID() kernel.UUID    { return p.productID }
func (p ProductOrder) Slug() string              { return p.slug }
func (p ProductOrder) Name() string              { return p.name }
func (p ProductOrder) SerialNumber() string      { return p.serialNumber }
func (p ProductOrder) Manufacturer() string      { return p.manufacturer }
func (p ProductOrder) Price() kernel.Money       { return p.price }
func (p ProductOrder) Currency() kernel.Currency { return p.currency }
func (p ProductOrder) Dimensions() Dimensions    { return p.dimensions }
func (p ProductOrder) Image() string             { return p.image }
func (p ProductOrder) Barcode() string           { return p.barcode }

// LocationOrder is an immutable snapshot of a delivery address.
type LocationOrder struct {
	addressID   kernel.UUID
	street      string
	postal      string
	city        string
	country     string
	coordinates kernel.Coordinates
}

// NewLocationOrder freezes an address. Street, city and country are required;
// postal codes are optional since not every country uses them.
func NewLocationOrder(
	addressID kernel.UUID,
	street, postal, city, country string,
	coordinates kernel.Coordinates,
) (LocationOrder, error) {
	if err := errors.Join(
		addressID.Validate(),
		coordinates.Validate(),
		requireText("street", street),
		requireText("city", city),
		requireText("country", country),
	); err != nil {
		return LocationOrder{}, err
	}

	return LocationOrder{
		addressID:   addressID,
		street:      street,
		postal:      postal,
		city:        city,
		country:     country,
		coordinates: coordinates,
	}, nil
}

func (l LocationOrder) AddressID() kernel.UUID          { return l.addressID }
func (l LocationOrder) Street() string                  { return l.street }
func (l LocationOrder) Postal() string                  { return l.postal }
func (l LocationOrder) City() string                    { return l.city }
func (l LocationOrder) Country() string                 { return l.country }
func (l LocationOrder) Coordinates() kernel.Coordinates { return l.coordinates }

func requireText(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
