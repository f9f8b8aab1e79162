// Package catalogrepo reads the live catalog (products, shops, addresses) and the
// user directory. The service never writes these tables; they are owned by their
// own collaborators and shared through the database.
package catalogrepo

import (
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slug         string    `gorm:"type:varchar(255)"`
	Name         string    `gorm:"type:varchar(255);not null"`
	SerialNumber string    `gorm:"type:varchar(255)"`
	Manufacturer string    `gorm:"type:varchar(255)"`
	Width        float64
	Height       float64
	Depth        float64
	Weight       float64
	Images       pq.StringArray `gorm:"type:text[]"`
	Barcode      string         `gorm:"type:varchar(64)"`
}

func (ProductDTO) TableName() string {
	return "products"
}

type ShopDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slug string    `gorm:"type:varchar(255)"`
	Name string    `gorm:"type:varchar(255);not null"`
	Logo string    `gorm:"type:text"`
	Type string    `gorm:"type:varchar(16);not null"`
}

func (ShopDTO) TableName() string {
	return "shops"
}

type AddressDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255)"`
	Street    string    `gorm:"type:varchar(255);not null"`
	Postal    string    `gorm:"type:varchar(32)"`
	City      string    `gorm:"type:varchar(255);not null"`
	Country   string    `gorm:"type:varchar(255);not null"`
	Latitude  float64
	Longitude float64
}

func (AddressDTO) TableName() string {
	return "addresses"
}

type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(16);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	FirstName string    `gorm:"type:varchar(255)"`
	LastName  string    `gorm:"type:varchar(255)"`
}

func (UserDTO) TableName() string {
	return "users"
}

func (d ProductDTO) toDomain() (catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(d.ID[:])
	if err != nil {
		return catalog.Product{}, err
	}
	return catalog.Product{
		ID:           id,
		Slug:         d.Slug,
		Name:         d.Name,
		SerialNumber: d.SerialNumber,
		Manufacturer: d.Manufacturer,
		Width:        d.Width,
		Height:       d.Height,
		Depth:        d.Depth,
		Weight:       d.Weight,
		Images:       append([]string(nil), d.Images...),
		Barcode:      d.Barcode,
	}, nil
}

func (d ShopDTO) toDomain() (catalog.Shop, error) {
	id, err := kernel.UUIDFromBytes(d.ID[:])
	if err != nil {
		return catalog.Shop{}, err
	}
	return catalog.Shop{
		ID:   id,
		Slug: d.Slug,
		Name: d.Name,
		Logo: d.Logo,
		Type: catalog.ShopType(d.Type),
	}, nil
}

func (d AddressDTO) toDomain() (catalog.Address, error) {
	id, err := kernel.UUIDFromBytes(d.ID[:])
	if err != nil {
		return catalog.Address{}, err
	}
	coords, err := kernel.NewCoordinates(d.Latitude, d.Longitude)
	if err != nil {
		return catalog.Address{}, err
	}
	return catalog.Address{
		ID:          id,
		Name:        d.Name,
		Street:      d.Street,
		Postal:      d.Postal,
		City:        d.City,
		Country:     d.Country,
		Coordinates: coords,
	}, nil
}

func (d UserDTO) toDomain() (identity.User, error) {
	id, err := kernel.UUIDFromBytes(d.ID[:])
	if err != nil {
		return identity.User{}, err
	}
	return identity.User{
		ID:        id,
		Role:      identity.Role(d.Role),
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
	}, nil
}
