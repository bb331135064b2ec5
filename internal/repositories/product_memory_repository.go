package repositories

import (
	"sync"

	"github.com/google/uuid"

	"github.com/valkiss024/product-catalog/internal/models"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository. It lets the service run without a database, which is
// handy for local development and fast tests.
type MemoryProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create stores the product under a freshly assigned ID.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = uuid.New().String()
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

// Update overwrites an existing product.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	if product.ID == "" {
		return models.NewDataValidationError("update called with empty id field")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return ErrNotFound
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID; absent IDs are a no-op.
func (r *MemoryProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return nil
	}
	delete(r.products, id)
	for i, storedID := range r.order {
		if storedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindByID returns a product by its ID.
func (r *MemoryProductRepository) FindByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// All returns every product in insertion order.
func (r *MemoryProductRepository) All() ([]models.Product, error) {
	return r.filter(func(models.Product) bool { return true })
}

// FindByName returns all products whose name matches exactly.
func (r *MemoryProductRepository) FindByName(name string) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool { return p.Name == name })
}

// FindByCategory returns all products in the given category.
func (r *MemoryProductRepository) FindByCategory(category models.Category) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool { return p.Category == category })
}

// FindByAvailability returns all products with the given availability.
func (r *MemoryProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool { return p.Available == available })
}

func (r *MemoryProductRepository) filter(match func(models.Product) bool) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		if product := r.products[id]; match(product) {
			products = append(products, product)
		}
	}
	return products, nil
}
