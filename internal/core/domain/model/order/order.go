package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrProductShopNotInOrder is returned when a product line names a shop that is not
	// part of the order. The whole order is rejected.
	ErrProductShopNotInOrder = errs.NewConflictError("product references a shop that is not part of the order")
)

// Order is a buyer's purchase across one or more shops. It is the aggregate root that
// owns the per-shop slices, the frozen delivery locations and the monetary total.
//
// Order follows these invariants:
//   - number, buyerID, total and product snapshots never change after creation
//   - at least one ShopOrder, at most one per shop
//   - total is the exact decimal sum of all product line prices at creation time
//   - updatedAt is bumped by every mutation
//
// Mutations go through the aggregate: each shop slice changes status on its own,
// the deliverer is assigned once known, and an administrator can Correct the
// shop slices, locations and currency wholesale.
type Order struct {
	number      Number
	buyerID     kernel.UUID
	delivererID *kernel.UUID
	total       kernel.Money
	currency    kernel.Currency
	shopOrders  []*ShopOrder
	locations   []LocationOrder
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewOrder creates an Order and computes its total from the product lines of every
// shop slice.
//
// Example:
//
//	number, _ := order.NewNumber()
//	o, err := order.NewOrder(number, buyerID, currency, shopOrders, locations, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	number Number,
	buyerID kernel.UUID,
	currency kernel.Currency,
	shopOrders []*ShopOrder,
	locations []LocationOrder,
	now time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setNumber(number),
		o.setBuyerID(buyerID),
		o.setCurrency(currency),
		o.setShopOrders(shopOrders),
	); err != nil {
		return nil, err
	}
	o.locations = append(make([]LocationOrder, 0, len(locations)), locations...)

	total, err := sumProducts(o.shopOrders)
	if err != nil {
		return nil, err
	}
	o.total = total

	return o, nil
}

// RestoreOrder rebuilds an Order from persistence. The stored total is kept as is:
// it is the amount the buyer agreed to, even after an administrative correction.
func RestoreOrder(
	number Number,
	buyerID kernel.UUID,
	delivererID *kernel.UUID,
	total kernel.Money,
	currency kernel.Currency,
	shopOrders []*ShopOrder,
	locations []LocationOrder,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setNumber(number),
		o.setBuyerID(buyerID),
		o.setCurrency(currency),
		o.setShopOrders(shopOrders),
		total.Validate(),
	); err != nil {
		return nil, err
	}
	if delivererID != nil {
		if err := delivererID.Validate(); err != nil {
			return nil, err
		}
		id := *delivererID
		o.delivererID = &id
	}
	o.total = total
	o.locations = append(make([]LocationOrder, 0, len(locations)), locations...)

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by number.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.number.IsEqual(other.number)
}

func (o *Order) Number() Number {
	return o.number
}

func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// DelivererID returns the assigned deliverer, or nil while none is assigned.
func (o *Order) DelivererID() *kernel.UUID {
	if o.delivererID == nil {
		return nil
	}
	id := *o.delivererID
	return &id
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Currency() kernel.Currency {
	return o.currency
}

// ShopOrders returns the shop slices in the order the buyer listed the shops.
func (o *Order) ShopOrders() []*ShopOrder {
	return append([]*ShopOrder(nil), o.shopOrders...)
}

func (o *Order) Locations() []LocationOrder {
	return append([]LocationOrder(nil), o.locations...)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ShopOrder finds the slice of the given shop.
func (o *Order) ShopOrder(shopID kernel.UUID) (*ShopOrder, error) {
	for _, so := range o.shopOrders {
		if so.ShopID().IsEqual(shopID) {
			return so, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shopId", shopID)
}

// ProductCount returns the number of product lines across every shop.
func (o *Order) ProductCount() int {
	n := 0
	for _, so := range o.shopOrders {
		n += len(so.products)
	}
	return n
}

// SetShopStatus moves one shop's slice to status. The other slices are untouched.
// It reports whether anything changed.
func (o *Order) SetShopStatus(shopID kernel.UUID, status FulfillmentStatus, now time.Time) (bool, error) {
	so, err := o.ShopOrder(shopID)
	if err != nil {
		return false, err
	}
	changed, err := so.ChangeStatus(status)
	if err != nil {
		return false, err
	}
	if changed {
		o.touch(now)
	}
	return changed, nil
}

// SetShopPickupTime records the pickup time of one shop's slice.
func (o *Order) SetShopPickupTime(shopID kernel.UUID, pickupTime string, now time.Time) error {
	so, err := o.ShopOrder(shopID)
	if err != nil {
		return err
	}
	if err = so.SetPickupTime(pickupTime); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

// AssignDeliverer sets or replaces the deliverer. Role checks belong to the caller,
// which knows the user directory.
func (o *Order) AssignDeliverer(delivererID kernel.UUID, now time.Time) error {
	if err := delivererID.Validate(); err != nil {
		return err
	}
	o.delivererID = &delivererID
	o.touch(now)
	return nil
}

// Correction carries the parts an administrator may replace. Nil fields are kept.
type Correction struct {
	Currency   *kernel.Currency
	ShopOrders []*ShopOrder
	Locations  []LocationOrder
}

// IsEmpty reports whether the correction replaces nothing.
func (c Correction) IsEmpty() bool {
	return c.Currency == nil && c.ShopOrders == nil && c.Locations == nil
}

// Correct replaces the provided parts wholesale. The total is not recomputed.
func (o *Order) Correct(c Correction, now time.Time) error {
	if c.IsEmpty() {
		return errs.NewValueIsRequiredError("correction")
	}

	var errList []error
	if c.Currency != nil {
		errList = append(errList, c.Currency.Validate())
	}
	if c.ShopOrders != nil {
		errList = append(errList, validateShopOrders(c.ShopOrders))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	if c.Currency != nil {
		o.currency = *c.Currency
	}
	if c.ShopOrders != nil {
		o.shopOrders = append(make([]*ShopOrder, 0, len(c.ShopOrders)), c.ShopOrders...)
	}
	if c.Locations != nil {
		o.locations = append(make([]LocationOrder, 0, len(c.Locations)), c.Locations...)
	}
	o.touch(now)
	return nil
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now.UTC()
}

func (o *Order) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyer", err)
	}
	o.buyerID = id
	return nil
}

func (o *Order) setCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	o.currency = currency
	return nil
}

func (o *Order) setShopOrders(shopOrders []*ShopOrder) error {
	if err := validateShopOrders(shopOrders); err != nil {
		return err
	}
	o.shopOrders = append(make([]*ShopOrder, 0, len(shopOrders)), shopOrders...)
	return nil
}

func validateShopOrders(shopOrders []*ShopOrder) error {
	if len(shopOrders) == 0 {
		return errs.NewValueIsRequiredError("shops")
	}
	seen := make(map[kernel.UUID]struct{}, len(shopOrders))
	for _, so := range shopOrders {
		if err := so.Validate(); err != nil {
			return err
		}
		if _, dup := seen[so.ShopID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"shops", fmt.Errorf("shop %s appears more than once", so.ShopID()))
		}
		seen[so.ShopID()] = struct{}{}
	}
	return nil
}

func sumProducts(shopOrders []*ShopOrder) (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for _, so := range shopOrders {
		for _, p := range so.products {
			var err error
			if total, err = total.Add(p.Price()); err != nil {
				return kernel.Money{}, err
			}
		}
	}
	return total, nil
}
