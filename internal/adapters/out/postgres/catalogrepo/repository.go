package catalogrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogProvider and UserDirectory.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// FindProducts loads the products with the given ids in one query.
func (r *GormCatalogRepository) FindProducts(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]catalog.Product, error) {
	var dtos []ProductDTO
	if err := r.findByIDs(ctx, ids, &dtos); err != nil {
		return nil, err
	}
	return collect(dtos, ProductDTO.toDomain, func(p catalog.Product) kernel.UUID { return p.ID })
}

// FindShops loads the shops with the given ids in one query.
func (r *GormCatalogRepository) FindShops(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]catalog.Shop, error) {
	var dtos []ShopDTO
	if err := r.findByIDs(ctx, ids, &dtos); err != nil {
		return nil, err
	}
	return collect(dtos, ShopDTO.toDomain, func(s catalog.Shop) kernel.UUID { return s.ID })
}

// FindAddresses loads the addresses with the given ids in one query.
func (r *GormCatalogRepository) FindAddresses(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]catalog.Address, error) {
	var dtos []AddressDTO
	if err := r.findByIDs(ctx, ids, &dtos); err != nil {
		return nil, err
	}
	return collect(dtos, AddressDTO.toDomain, func(a catalog.Address) kernel.UUID { return a.ID })
}

// GetUser resolves a single user.
func (r *GormCatalogRepository) GetUser(ctx context.Context, id kernel.UUID) (identity.User, error) {
	if err := id.Validate(); err != nil {
		return identity.User{}, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.User{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return identity.User{}, err
	}
	return dto.toDomain()
}

func (r *GormCatalogRepository) findByIDs(ctx context.Context, ids []kernel.UUID, dest any) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).Where("id IN ?", raw).Find(dest).Error
}

func collect[D any, T any](
	dtos []D,
	convert func(D) (T, error),
	key func(T) kernel.UUID,
) (map[kernel.UUID]T, error) {
	out := make(map[kernel.UUID]T, len(dtos))
	for _, dto := range dtos {
		item, err := convert(dto)
		if err != nil {
			return nil, err
		}
		out[key(item)] = item
	}
	return out, nil
}
