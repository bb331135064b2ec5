package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/valkiss024/product-catalog/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create persists the product under a freshly assigned ID. Any ID already
// set on the product is discarded; identities are never client-supplied.
func (r *GORMProductRepository) Create(product *models.Product) error {
	product.ID = uuid.New().String()
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites all mutable fields of the stored record matching the
// product's ID. An empty ID is a validation error, an unknown one ErrNotFound.
func (r *GORMProductRepository) Update(product *models.Product) error {
	if product.ID == "" {
		return models.NewDataValidationError("update called with empty id field")
	}
	res := r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("name", "description", "price", "available", "category").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product with the given ID. Deleting an absent ID is
// a no-op, not an error.
func (r *GORMProductRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

// FindByID retrieves a single product by its ID.
func (r *GORMProductRepository) FindByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// All retrieves every product in insertion order.
func (r *GORMProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// FindByName retrieves all products whose name matches exactly.
func (r *GORMProductRepository) FindByName(name string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("name = ?", name).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by name %q: %w", name, err)
	}
	return products, nil
}

// FindByCategory retrieves all products in the given category.
func (r *GORMProductRepository) FindByCategory(category models.Category) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("category = ?", category.String()).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by category %s: %w", category, err)
	}
	return products, nil
}

// FindByAvailability retrieves all products with the given availability.
func (r *GORMProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("available = ?", available).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by availability %t: %w", available, err)
	}
	return products, nil
}
