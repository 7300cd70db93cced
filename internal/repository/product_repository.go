package repository

import (
	"errors"
	"strconv"

	"github.com/aurelia-jewelry/aurelia/internal/models"

	"gorm.io/gorm"
)

// ProductRepository is the catalog read interface the cart engine depends on.
type ProductRepository interface {
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetVariant(productID string, variantID string) (*models.ProductVariant, error)
	ListActive() ([]models.Product, error)
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository is the GORM implementation.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// GetByID fetches a product with its variants. Returns (nil, nil) when the
// id is unknown or malformed.
func (r *GormProductRepository) GetByID(id string) (*models.Product, error) {
	numeric, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	var product models.Product
	err = r.db.Preload("Variants").First(&product, uint(numeric)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetBySlug fetches a product by its handle.
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Variants").Where("slug = ?", slug).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetVariant fetches one variant of a product. Returns (nil, nil) when
// either id is unknown or malformed.
func (r *GormProductRepository) GetVariant(productID string, variantID string) (*models.ProductVariant, error) {
	productNumeric, err := strconv.ParseUint(productID, 10, 64)
	if err != nil {
		return nil, nil
	}
	variantNumeric, err := strconv.ParseUint(variantID, 10, 64)
	if err != nil {
		return nil, nil
	}
	var variant models.ProductVariant
	err = r.db.Where("product_id = ? AND id = ?", uint(productNumeric), uint(variantNumeric)).First(&variant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// ListActive returns listed products in sort order.
func (r *GormProductRepository) ListActive() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("Variants").Where("is_active = ?", true).
		Order("sort_order asc, id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
