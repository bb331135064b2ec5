package services_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/valkiss024/product-catalog/internal/models"
	"github.com/valkiss024/product-catalog/internal/repositories"
	"github.com/valkiss024/product-catalog/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) All() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(name string) ([]models.Product, error) {
	args := m.Called(name)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(category models.Category) ([]models.Product, error) {
	args := m.Called(category)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	args := m.Called(available)
	return args.Get(0).([]models.Product), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func newTestProduct(id string) *models.Product {
	return &models.Product{
		ID:        id,
		Name:      "Fedora",
		Price:     decimal.RequireFromString("12.50"),
		Available: true,
		Category:  models.CategoryCloths,
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	newProduct := newTestProduct("")

	// Test successful creation, which must announce the product.
	mockRepo.On("Create", newProduct).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.created", mock.Anything).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// Test creation failure (e.g., database error); no event is published.
	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_CreateProductPublishFailureIsBestEffort(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	newProduct := newTestProduct("")
	mockRepo.On("Create", newProduct).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.created", mock.Anything).
		Return(fmt.Errorf("broker unreachable")).Once()

	// A broker outage must not fail the create.
	assert.NoError(t, service.CreateProduct(newProduct))
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := newTestProduct("1")

	// Test successful retrieval
	mockRepo.On("FindByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("FindByID", "99").Return(nil, repositories.ErrNotFound).Once()
	product, err = service.GetProductByID("99")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	updatedProduct := newTestProduct("1")

	// Test successful update
	mockRepo.On("Update", updatedProduct).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.updated", mock.Anything).Return(nil).Once()
	err := service.UpdateProduct(updatedProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// Test update failure (product not found in repo); no event is published.
	missingProduct := newTestProduct("99")
	mockRepo.On("Update", missingProduct).Return(repositories.ErrNotFound).Once()
	err = service.UpdateProduct(missingProduct)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	existing := newTestProduct("1")

	// Test successful deletion
	mockRepo.On("FindByID", "1").Return(existing, nil).Once()
	mockRepo.On("Delete", "1").Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.deleted", mock.Anything).Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// Deleting an absent id is a quiet no-op; no delete call, no event.
	mockRepo.On("FindByID", "99").Return(nil, repositories.ErrNotFound).Once()
	err = service.DeleteProduct("99")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{*newTestProduct("1"), *newTestProduct("2")}

	// Empty filter lists everything.
	mockRepo.On("All").Return(expectedProducts, nil).Once()
	products, err := service.ListProducts(services.ProductFilter{})
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)

	// Name filter.
	name := "Fedora"
	mockRepo.On("FindByName", "Fedora").Return(expectedProducts, nil).Once()
	products, err = service.ListProducts(services.ProductFilter{Name: &name})
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	// Category filter.
	category := models.CategoryCloths
	mockRepo.On("FindByCategory", models.CategoryCloths).Return(expectedProducts, nil).Once()
	products, err = service.ListProducts(services.ProductFilter{Category: &category})
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	// Availability filter.
	available := true
	mockRepo.On("FindByAvailability", true).Return(expectedProducts, nil).Once()
	products, err = service.ListProducts(services.ProductFilter{Available: &available})
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	mockRepo.AssertExpectations(t)
}
