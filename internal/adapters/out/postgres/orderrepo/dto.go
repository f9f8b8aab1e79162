// Package orderrepo maps order aggregates onto four tables: orders, shop_orders,
// product_orders and location_orders. Children keep their request order through a
// position column.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row.
type OrderDTO struct {
	Number      string             `gorm:"type:varchar(10);primaryKey"`
	Total       decimal.Decimal    `gorm:"type:numeric(14,2);not null"`
	Currency    string             `gorm:"type:varchar(3);not null"`
	BuyerID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	DelivererID *uuid.UUID         `gorm:"type:uuid;index"`
	CreatedAt   time.Time          `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt   time.Time          `gorm:"not null;autoUpdateTime:false"`
	ShopOrders  []ShopOrderDTO     `gorm:"foreignKey:OrderNumber;references:Number;constraint:OnDelete:CASCADE"`
	Locations   []LocationOrderDTO `gorm:"foreignKey:OrderNumber;references:Number;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ShopOrderDTO is one shop's slice. A shop appears at most once per order.
type ShopOrderDTO struct {
	ID          int64             `gorm:"primaryKey;autoIncrement"`
	OrderNumber string            `gorm:"type:varchar(10);not null;uniqueIndex:idx_shop_orders_order_shop"`
	ShopID      uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_shop_orders_order_shop"`
	Position    int               `gorm:"not null"`
	Slug        string            `gorm:"type:varchar(255)"`
	Name        string            `gorm:"type:varchar(255);not null"`
	Logo        string            `gorm:"type:text"`
	Type        string            `gorm:"type:varchar(16);not null"`
	Status      string            `gorm:"type:varchar(16);not null;index"`
	PickupTime  *string           `gorm:"type:varchar(255)"`
	Products    []ProductOrderDTO `gorm:"foreignKey:ShopOrderID;constraint:OnDelete:CASCADE"`
}

func (ShopOrderDTO) TableName() string {
	return "shop_orders"
}

// ProductOrderDTO is a frozen product line.
type ProductOrderDTO struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	ShopOrderID  int64           `gorm:"not null;index"`
	Position     int             `gorm:"not null"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	Slug         string          `gorm:"type:varchar(255)"`
	Name         string          `gorm:"type:varchar(255);not null"`
	SerialNumber string          `gorm:"type:varchar(255)"`
	Manufacturer string          `gorm:"type:varchar(255)"`
	Price        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency     string          `gorm:"type:varchar(3);not null"`
	Width        float64
	Height       float64
	Depth        float64
	Weight       float64
	Image        string `gorm:"type:text"`
	Barcode      string `gorm:"type:varchar(64)"`
}

func (ProductOrderDTO) TableName() string {
	return "product_orders"
}

// LocationOrderDTO is a frozen delivery address.
type LocationOrderDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	OrderNumber string    `gorm:"type:varchar(10);not null;index"`
	Position    int       `gorm:"not null"`
	AddressID   uuid.UUID `gorm:"type:uuid;not null"`
	Street      string    `gorm:"type:varchar(255);not null"`
	Postal      string    `gorm:"type:varchar(32)"`
	City        string    `gorm:"type:varchar(255);not null"`
	Country     string    `gorm:"type:varchar(255);not null"`
	Latitude    float64
	Longitude   float64
}

func (LocationOrderDTO) TableName() string {
	return "location_orders"
}

// fromDomain converts an order aggregate with all children to its rows.
func fromDomain(o *order.Order) OrderDTO {
	var delivererID *uuid.UUID
	if id := o.DelivererID(); id != nil {
		raw := id.Bytes()
		delivererID = &raw
	}

	number := o.Number().String()
	return OrderDTO{
		Number:      number,
		Total:       o.Total().Decimal(),
		Currency:    o.Currency().String(),
		BuyerID:     o.BuyerID().Bytes(),
		DelivererID: delivererID,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		ShopOrders:  shopOrdersFromDomain(number, o.ShopOrders()),
		Locations:   locationsFromDomain(number, o.Locations()),
	}
}

func shopOrdersFromDomain(number string, shopOrders []*order.ShopOrder) []ShopOrderDTO {
	out := make([]ShopOrderDTO, 0, len(shopOrders))
	for i, so := range shopOrders {
		products := make([]ProductOrderDTO, 0, len(so.Products()))
		for j, p := range so.Products() {
			dim := p.Dimensions()
			products = append(products, ProductOrderDTO{
				Position:     j,
				ProductID:    p.ProductID().Bytes(),
				Slug:         p.Slug(),
				Name:         p.Name(),
				SerialNumber: p.SerialNumber(),
				Manufacturer: p.Manufacturer(),
				Price:        p.Price().Decimal(),
				Currency:     p.Currency().String(),
				Width:        dim.Width,
				Height:       dim.Height,
				Depth:        dim.Depth,
				Weight:       dim.Weight,
				Image:        p.Image(),
				Barcode:      p.Barcode(),
			})
		}
		out = append(out, ShopOrderDTO{
			OrderNumber: number,
			ShopID:      so.ShopID().Bytes(),
			Position:    i,
			Slug:        so.Slug(),
			Name:        so.Name(),
			Logo:        so.Logo(),
			Type:        string(so.Type()),
			Status:      so.Status().String(),
			PickupTime:  pickupTimeColumn(so.PickupTime()),
			Products:    products,
		})
	}
	return out
}

func locationsFromDomain(number string, locations []order.LocationOrder) []LocationOrderDTO {
	out := make([]LocationOrderDTO, 0, len(locations))
	for i, l := range locations {
		out = append(out, LocationOrderDTO{
			OrderNumber: number,
			Position:    i,
			AddressID:   l.AddressID().Bytes(),
			Street:      l.Street(),
			Postal:      l.Postal(),
			City:        l.City(),
			Country:     l.Country(),
			Latitude:    l.Coordinates().Latitude(),
			Longitude:   l.Coordinates().Longitude(),
		})
	}
	return out
}

func pickupTimeColumn(pickupTime string) *string {
	if pickupTime == "" {
		return nil
	}
	return &pickupTime
}

// toDomain rebuilds an order aggregate. Children must be loaded in position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	number, err := order.NumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	var delivererID *kernel.UUID
	if dto.DelivererID != nil {
		id, idErr := kernel.UUIDFromBytes((*dto.DelivererID)[:])
		if idErr != nil {
			return nil, idErr
		}
		delivererID = &id
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}

	shopOrders := make([]*order.ShopOrder, 0, len(dto.ShopOrders))
	for _, s := range dto.ShopOrders {
		so, soErr := shopOrderToDomain(s)
		if soErr != nil {
			return nil, soErr
		}
		shopOrders = append(shopOrders, so)
	}

	locations := make([]order.LocationOrder, 0, len(dto.Locations))
	for _, l := range dto.Locations {
		loc, locErr := locationToDomain(l)
		if locErr != nil {
			return nil, locErr
		}
		locations = append(locations, loc)
	}

	return order.RestoreOrder(
		number, buyerID, delivererID, total, currency,
		shopOrders, locations, dto.CreatedAt, dto.UpdatedAt,
	)
}

func shopOrderToDomain(dto ShopOrderDTO) (*order.ShopOrder, error) {
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseFulfillmentStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	products := make([]order.ProductOrder, 0, len(dto.Products))
	for _, p := range dto.Products {
		product, pErr := productToDomain(p)
		if pErr != nil {
			return nil, pErr
		}
		products = append(products, product)
	}

	var pickupTime string
	if dto.PickupTime != nil {
		pickupTime = *dto.PickupTime
	}

	return order.RestoreShopOrder(
		shopID, dto.Slug, dto.Name, dto.Logo, catalog.ShopType(dto.Type),
		status, pickupTime, products,
	)
}

func productToDomain(dto ProductOrderDTO) (order.ProductOrder, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.ProductOrder{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.ProductOrder{}, err
	}
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return order.ProductOrder{}, err
	}

	return order.NewProductOrder(order.ProductOrderParams{
		ProductID:    productID,
		Slug:         dto.Slug,
		Name:         dto.Name,
		SerialNumber: dto.SerialNumber,
		Manufacturer: dto.Manufacturer,
		Price:        price,
		Currency:     currency,
		Dimensions: order.Dimensions{
			Width:  dto.Width,
			Height: dto.Height,
			Depth:  dto.Depth,
			Weight: dto.Weight,
		},
		Image:   dto.Image,
		Barcode: dto.Barcode,
	})
}

func locationToDomain(dto LocationOrderDTO) (order.LocationOrder, error) {
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return order.LocationOrder{}, err
	}
	coords, err := kernel.NewCoordinates(dto.Latitude, dto.Longitude)
	if err != nil {
		return order.LocationOrder{}, err
	}
	return order.NewLocationOrder(addressID, dto.Street, dto.Postal, dto.City, dto.Country, coords)
}
