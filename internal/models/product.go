package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DataValidationError reports a payload that could not be turned into a
// valid Product (missing fields, wrong types, malformed values).
type DataValidationError struct {
	Message string
}

func (e *DataValidationError) Error() string {
	return e.Message
}

// NewDataValidationError creates a DataValidationError with a formatted message.
func NewDataValidationError(format string, args ...interface{}) *DataValidationError {
	return &DataValidationError{Message: fmt.Sprintf(format, args...)}
}

// Product represents a catalog item. An empty ID means the product is
// transient; the persistence layer assigns the ID on create.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"not null" validate:"required"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	Available   bool            `json:"available"`
	Category    Category        `json:"category" gorm:"type:varchar(20)"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

// Serialize converts the product into a plain key/value representation.
// Price is rendered as a decimal string to avoid float rounding on the wire.
func (p *Product) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
}

// Deserialize populates the product from a key/value payload. Required
// keys are name, price, available and category; description is optional.
// An unknown category name falls back to UNKNOWN instead of failing.
func (p *Product) Deserialize(payload map[string]interface{}) error {
	if payload == nil {
		return NewDataValidationError("invalid product: body contained bad or no data")
	}

	for _, key := range []string{"name", "price", "available", "category"} {
		if _, ok := payload[key]; !ok {
			return NewDataValidationError("invalid product: missing %s", key)
		}
	}

	name, ok := payload["name"].(string)
	if !ok || name == "" {
		return NewDataValidationError("invalid product: name must be a non-empty string")
	}
	p.Name = name

	if raw, ok := payload["description"]; ok {
		description, ok := raw.(string)
		if !ok {
			return NewDataValidationError("invalid product: description must be a string")
		}
		p.Description = description
	}

	price, err := parsePrice(payload["price"])
	if err != nil {
		return err
	}
	p.Price = price

	available, ok := payload["available"].(bool)
	if !ok {
		return NewDataValidationError(
			"invalid product: invalid type for boolean [available]: %T", payload["available"],
		)
	}
	p.Available = available

	category, ok := payload["category"].(string)
	if !ok {
		return NewDataValidationError("invalid product: category must be a string")
	}
	p.Category = ParseCategory(category)

	return nil
}

// parsePrice accepts JSON numbers and decimal strings.
func parsePrice(raw interface{}) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		price, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, NewDataValidationError("invalid product: malformed price %q", v)
		}
		return price, nil
	default:
		return decimal.Zero, NewDataValidationError("invalid product: invalid type for price: %T", raw)
	}
}
