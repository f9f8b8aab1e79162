package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrShopOrderIsNotConstructed is returned when a ShopOrder was not created through
// NewShopOrder or RestoreShopOrder.
var ErrShopOrderIsNotConstructed = errors.New("ShopOrder must be created via NewShopOrder constructor")

// ShopOrder is one shop's slice of a multi-vendor order. It carries a frozen copy of
// the shop's identity and its own fulfillment status, so every shop progresses on its
// own without touching the others.
//
// Invariants:
//   - shopID, slug, name, logo and type never change after creation
//   - status only moves along the FulfillmentStatus transition table
//   - pickupTime can only be set while status is Accepted or Completed
type ShopOrder struct {
	shopID     kernel.UUID
	slug       string
	name       string
	logo       string
	shopType   catalog.ShopType
	status     FulfillmentStatus
	pickupTime string
	products   []ProductOrder

	isConstructed bool
}

// NewShopOrder creates an empty bucket for a shop in the Waiting status.
//
// Example:
//
//	so, err := order.NewShopOrder(shop.ID, shop.Slug, shop.Name, shop.Logo, shop.Type)
//	if err != nil {
//	    return err
//	}
//	err = so.AddProduct(line)
func NewShopOrder(shopID kernel.UUID, slug, name, logo string, shopType catalog.ShopType) (*ShopOrder, error) {
	so := &ShopOrder{
		status:        Waiting,
		isConstructed: true,
	}

	if err := errors.Join(
		so.setShopID(shopID),
		so.setName(name),
		so.setShopType(shopType),
	); err != nil {
		return nil, err
	}
	so.slug = slug
	so.logo = logo

	return so, nil
}

// RestoreShopOrder rebuilds a ShopOrder from persistence. Status and pickup time are
// taken as stored; no transition is checked.
func RestoreShopOrder(
	shopID kernel.UUID,
	slug, name, logo string,
	shopType catalog.ShopType,
	status FulfillmentStatus,
	pickupTime string,
	products []ProductOrder,
) (*ShopOrder, error) {
	so, err := NewShopOrder(shopID, slug, name, logo, shopType)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	so.status = status
	so.pickupTime = pickupTime
	so.products = append(make([]ProductOrder, 0, len(products)), products...)
	return so, nil
}

func (s *ShopOrder) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShopOrderIsNotConstructed
	}
	return nil
}

func (s *ShopOrder) ShopID() kernel.UUID {
	return s.shopID
}

func (s *ShopOrder) Slug() string {
	return s.slug
}

func (s *ShopOrder) Name() string {
	return s.name
}

func (s *ShopOrder) Logo() string {
	return s.logo
}

func (s *ShopOrder) Type() catalog.ShopType {
	return s.shopType
}

func (s *ShopOrder) Status() FulfillmentStatus {
	return s.status
}

// PickupTime returns the free-form pickup time, empty until a shop sets one.
func (s *ShopOrder) PickupTime() string {
	return s.pickupTime
}

// Products returns a copy of the product lines in request order.
func (s *ShopOrder) Products() []ProductOrder {
	return append([]ProductOrder(nil), s.products...)
}

// AddProduct appends a product line. Only used while the order is being assembled.
func (s *ShopOrder) AddProduct(p ProductOrder) error {
	if err := p.ProductID().Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product", err)
	}
	s.products = append(s.products, p)
	return nil
}

// ChangeStatus applies the transition table. It reports whether the status actually
// changed, so callers can skip writes and notifications for idempotent repeats.
func (s *ShopOrder) ChangeStatus(next FulfillmentStatus) (bool, error) {
	status, err := s.status.TransitionTo(next)
	if err != nil {
		return false, err
	}
	changed := status != s.status
	s.status = status
	return changed, nil
}

// SetPickupTime records when the buyer or deliverer can collect the shop's goods.
func (s *ShopOrder) SetPickupTime(pickupTime string) error {
	value := strings.TrimSpace(pickupTime)
	if value == "" {
		return errs.NewValueIsRequiredError("pickupTime")
	}
	if !s.status.AllowsPickupTime() {
		return errs.NewConflictErrorWithCause(
			"pickupTime", fmt.Errorf("shop order is %s, must be accepted or completed", s.status))
	}
	s.pickupTime = value
	return nil
}

func (s *ShopOrder) setShopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.shopID = id
	return nil
}

func (s *ShopOrder) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("shop name")
	}
	s.name = name
	return nil
}

func (s *ShopOrder) setShopType(t catalog.ShopType) error {
	if !t.IsValid() {
		return errs.NewValueIsInvalidErrorWithCause("shop type", fmt.Errorf("%q is not store or restaurant", t))
	}
	s.shopType = t
	return nil
}
