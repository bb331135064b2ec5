package services

import (
	"errors"
	"log"

	"github.com/valkiss024/product-catalog/internal/models"
	"github.com/valkiss024/product-catalog/internal/repositories"
)

// EventPublisher publishes product lifecycle events to a message broker.
type EventPublisher interface {
	PublishProductEvent(event string, payload map[string]interface{}) error
}

// ProductFilter narrows a product listing. At most one field is honored,
// checked in the order name, category, availability.
type ProductFilter struct {
	Name      *string
	Category  *models.Category
	Available *bool
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. The publisher may be nil,
// in which case lifecycle events are not emitted.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// CreateProduct persists a new product and announces it.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publish("product.created", product)
	return nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.FindByID(id)
}

// UpdateProduct overwrites an existing product and announces the change.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publish("product.updated", product)
	return nil
}

// DeleteProduct deletes a product by its ID. Deleting an unknown ID is a
// no-op and emits no event.
func (s *ProductService) DeleteProduct(id string) error {
	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("product.deleted", product)
	return nil
}

// ListProducts retrieves products matching the filter, or all products
// when the filter is empty.
func (s *ProductService) ListProducts(filter ProductFilter) ([]models.Product, error) {
	switch {
	case filter.Name != nil:
		return s.repo.FindByName(*filter.Name)
	case filter.Category != nil:
		return s.repo.FindByCategory(*filter.Category)
	case filter.Available != nil:
		return s.repo.FindByAvailability(*filter.Available)
	default:
		return s.repo.All()
	}
}

// publish emits a lifecycle event on a best-effort basis. A broker outage
// must not fail the request that triggered the event.
func (s *ProductService) publish(event string, product *models.Product) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductEvent(event, product.Serialize()); err != nil {
		log.Printf("Failed to publish %s event for product %s: %v", event, product.ID, err)
	}
}
