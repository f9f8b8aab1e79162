package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderRow struct {
	Number      string
	Total       decimal.Decimal
	Currency    string
	BuyerID     uuid.UUID
	DelivererID uuid.NullUUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type shopOrderRow struct {
	ID          int64
	OrderNumber string
	ShopID      uuid.UUID
	Slug        string
	Name        string
	Logo        string
	Type        string
	Status      string
	PickupTime  sql.NullString
}

type productRow struct {
	ShopOrderID  int64
	ProductID    uuid.UUID
	Slug         string
	Name         string
	SerialNumber string
	Manufacturer string
	Price        decimal.Decimal
	Currency     string
	Width        float64
	Height       float64
	Depth        float64
	Weight       float64
	Image        string
	Barcode      string
}

type locationRow struct {
	OrderNumber string
	AddressID   uuid.UUID
	Street      string
	Postal      string
	City        string
	Country     string
	Latitude    float64
	Longitude   float64
}

// loadOrders reads the orders matching filter with all children in four queries,
// whatever the number of orders. filter is appended to the orders query and may
// reference the orders table as o.
func loadOrders(ctx context.Context, db *gorm.DB, filter string, args ...any) ([]OrderResponse, error) {
	db = db.WithContext(ctx)

	var orders []orderRow
	if err := db.Raw(fmt.Sprintf(`
		SELECT o.number, o.total, o.currency, o.buyer_id, o.deliverer_id, o.created_at, o.updated_at
		FROM orders o
		%s
		ORDER BY o.created_at ASC, o.number ASC
	`, filter), args...).Scan(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []OrderResponse{}, nil
	}

	numbers := make([]string, 0, len(orders))
	for _, o := range orders {
		numbers = append(numbers, o.Number)
	}

	var shops []shopOrderRow
	if err := db.Raw(`
		SELECT id, order_number, shop_id, slug, name, logo, type, status, pickup_time
		FROM shop_orders
		WHERE order_number IN ?
		ORDER BY order_number, position
	`, numbers).Scan(&shops).Error; err != nil {
		return nil, err
	}

	shopOrderIDs := make([]int64, 0, len(shops))
	for _, s := range shops {
		shopOrderIDs = append(shopOrderIDs, s.ID)
	}

	var products []productRow
	if len(shopOrderIDs) > 0 {
		if err := db.Raw(`
			SELECT shop_order_id, product_id, slug, name, serial_number, manufacturer, price, currency,
			       width, height, depth, weight, image, barcode
			FROM product_orders
			WHERE shop_order_id IN ?
			ORDER BY shop_order_id, position
		`, shopOrderIDs).Scan(&products).Error; err != nil {
			return nil, err
		}
	}

	var locations []locationRow
	if err := db.Raw(`
		SELECT order_number, address_id, street, postal, city, country, latitude, longitude
		FROM location_orders
		WHERE order_number IN ?
		ORDER BY order_number, position
	`, numbers).Scan(&locations).Error; err != nil {
		return nil, err
	}

	productsByShop := make(map[int64][]ProductResponse, len(shops))
	for _, p := range products {
		productsByShop[p.ShopOrderID] = append(productsByShop[p.ShopOrderID], ProductResponse{
			ProductID:    p.ProductID.String(),
			Slug:         p.Slug,
			Name:         p.Name,
			SerialNumber: p.SerialNumber,
			Manufacturer: p.Manufacturer,
			Price:        p.Price.String(),
			Currency:     p.Currency,
			Width:        p.Width,
			Height:       p.Height,
			Depth:        p.Depth,
			Weight:       p.Weight,
			Image:        p.Image,
			Barcode:      p.Barcode,
		})
	}

	shopsByOrder := make(map[string][]ShopOrderResponse, len(orders))
	for _, s := range shops {
		items := productsByShop[s.ID]
		if items == nil {
			items = []ProductResponse{}
		}
		shopsByOrder[s.OrderNumber] = append(shopsByOrder[s.OrderNumber], ShopOrderResponse{
			ShopID:     s.ShopID.String(),
			Slug:       s.Slug,
			Name:       s.Name,
			Logo:       s.Logo,
			Type:       s.Type,
			Status:     s.Status,
			PickupTime: s.PickupTime.String,
			Products:   items,
		})
	}

	locationsByOrder := make(map[string][]LocationResponse, len(orders))
	for _, l := range locations {
		locationsByOrder[l.OrderNumber] = append(locationsByOrder[l.OrderNumber], LocationResponse{
			AddressID: l.AddressID.String(),
			Street:    l.Street,
			Postal:    l.Postal,
			City:      l.City,
			Country:   l.Country,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
		})
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp := OrderResponse{
			Number:    o.Number,
			Total:     o.Total.String(),
			Currency:  o.Currency,
			BuyerID:   o.BuyerID.String(),
			Shops:     shopsByOrder[o.Number],
			Locations: locationsByOrder[o.Number],
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		}
		if o.DelivererID.Valid {
			id := o.DelivererID.UUID.String()
			resp.DelivererID = &id
		}
		if resp.Shops == nil {
			resp.Shops = []ShopOrderResponse{}
		}
		if resp.Locations == nil {
			resp.Locations = []LocationResponse{}
		}
		out = append(out, resp)
	}

	return out, nil
}
