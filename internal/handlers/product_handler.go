package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/valkiss024/product-catalog/internal/models"
	"github.com/valkiss024/product-catalog/internal/repositories"
	"github.com/valkiss024/product-catalog/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.HandleIndex)
	app.Get("/health", h.HandleHealth)

	productRoutes := app.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleIndex returns an informational page about the service.
func (h *ProductHandler) HandleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "Product Catalog REST API Service",
		"version": "1.0",
		"paths":   fiber.Map{"products": "/products"},
	})
}

// HandleHealth reports service liveness for external orchestration.
func (h *ProductHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "OK"})
}

// HandleCreateProduct creates a new product from a JSON payload.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return unsupportedMediaType(c)
	}

	var product models.Product
	if err := h.parseProduct(c, &product); err != nil {
		return badRequest(c, err)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return h.mapServiceError(c, err, "Could not create product")
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/products/%s", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product.Serialize())
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, id)
		}
		return h.mapServiceError(c, err, "Could not retrieve product")
	}
	return c.JSON(product.Serialize())
}

// HandleUpdateProduct overwrites an existing product with a JSON payload.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return unsupportedMediaType(c)
	}

	id := c.Params("id")
	if _, err := h.service.GetProductByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, id)
		}
		return h.mapServiceError(c, err, "Could not retrieve product")
	}

	var product models.Product
	if err := h.parseProduct(c, &product); err != nil {
		return badRequest(c, err)
	}

	// The path identifies the resource; any id in the body is ignored.
	product.ID = id
	if err := h.service.UpdateProduct(&product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, id)
		}
		return h.mapServiceError(c, err, "Could not update product")
	}
	return c.JSON(product.Serialize())
}

// HandleDeleteProduct deletes a product. The delete is idempotent: the
// response is 204 whether or not the ID existed.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(id); err != nil {
		return h.mapServiceError(c, err, "Could not delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListProducts lists products, optionally filtered by exactly one of
// the name, category or available query parameters.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var filter services.ProductFilter
	if name := c.Query("name"); name != "" {
		filter.Name = &name
	} else if categoryName := c.Query("category"); categoryName != "" {
		category := models.ParseCategory(categoryName)
		filter.Category = &category
	} else if availableRaw := c.Query("available"); availableRaw != "" {
		available, err := strconv.ParseBool(strings.ToLower(availableRaw))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("Invalid boolean value for available: %q", availableRaw),
			})
		}
		filter.Available = &available
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		return h.mapServiceError(c, err, "Could not retrieve products")
	}

	results := make([]map[string]interface{}, 0, len(products))
	for i := range products {
		results = append(results, products[i].Serialize())
	}
	return c.JSON(results)
}

// parseProduct decodes the request body into a key/value payload and
// deserializes it into the product. Any failure is a validation error.
func (h *ProductHandler) parseProduct(c *fiber.Ctx, product *models.Product) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return models.NewDataValidationError("invalid product: expected a JSON object")
	}

	if err := product.Deserialize(payload); err != nil {
		return err
	}

	if err := h.validate.Struct(product); err != nil {
		return models.NewDataValidationError("invalid product: %v", err)
	}
	return nil
}

// hasJSONContentType enforces the JSON content type on write endpoints.
// A charset parameter after the media type is acceptable.
func hasJSONContentType(c *fiber.Ctx) bool {
	contentType := strings.TrimSpace(c.Get(fiber.HeaderContentType))
	return strings.HasPrefix(contentType, fiber.MIMEApplicationJSON)
}

func unsupportedMediaType(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
		"message": fmt.Sprintf("Content-Type must be %s", fiber.MIMEApplicationJSON),
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": err.Error(),
	})
}

func notFound(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("Product with id '%s' was not found.", id),
	})
}

// mapServiceError translates service failures into HTTP responses.
// Validation errors are the client's fault; everything else is ours.
func (h *ProductHandler) mapServiceError(c *fiber.Ctx, err error, message string) error {
	var validationErr *models.DataValidationError
	if errors.As(err, &validationErr) {
		return badRequest(c, validationErr)
	}
	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
