package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/cbisgaard/repairdesk/internal/common"
	"github.com/cbisgaard/repairdesk/internal/entity"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, id int) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	SaveProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	SearchProducts(ctx context.Context, keyword string) ([]*entity.Product, error)
}

type productRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewProductRepository(db *gorm.DB, logger *slog.Logger) ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func (r *productRepository) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Take(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError("product not found")
		}
		r.logger.Error("failed to get product", "product_id", id, "error", err)
		return nil, common.DatabaseError("get product", err)
	}
	return &product, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	err := r.db.WithContext(ctx).Order("LOWER(name) ASC").Find(&products).Error
	if err != nil {
		r.logger.Error("failed to list products", "error", err)
		return nil, common.DatabaseError("list products", err)
	}
	return products, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		r.logger.Error("failed to create product", "error", err)
		return nil, common.DatabaseError("create product", err)
	}
	return product, nil
}

func (r *productRepository) SaveProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		r.logger.Error("failed to save product", "product_id", product.ID, "error", err)
		return nil, common.DatabaseError("save product", err)
	}
	return product, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&entity.Product{}, id)
	if res.Error != nil {
		r.logger.Error("failed to delete product", "product_id", id, "error", res.Error)
		return common.DatabaseError("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.NotFoundError("product not found")
	}
	return nil
}

// SearchProducts matches the keyword case-insensitively against product
// number, name, EAN and type. There is intentionally no numeric-id match
// here, unlike job search. Ordered case-insensitively by name.
func (r *productRepository) SearchProducts(ctx context.Context, keyword string) ([]*entity.Product, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"

	var products []*entity.Product
	err := r.db.WithContext(ctx).
		Where(
			r.db.Where("LOWER(product_number) LIKE ?", pattern).
				Or("LOWER(name) LIKE ?", pattern).
				Or("LOWER(ean) LIKE ?", pattern).
				Or("LOWER(type) LIKE ?", pattern),
		).
		Order("LOWER(name) ASC").
		Find(&products).Error
	if err != nil {
		r.logger.Error("product search failed", "keyword", keyword, "error", err)
		return nil, common.DatabaseError("search products", err)
	}
	return products, nil
}
