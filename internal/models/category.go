package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Category is the enumerated product category tag.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCloths
	CategoryFood
	CategoryHousewares
	CategoryAutomotive
	CategoryTools
)

var categoryNames = map[Category]string{
	CategoryUnknown:    "UNKNOWN",
	CategoryCloths:     "CLOTHS",
	CategoryFood:       "FOOD",
	CategoryHousewares: "HOUSEWARES",
	CategoryAutomotive: "AUTOMOTIVE",
	CategoryTools:      "TOOLS",
}

// String returns the category's enumerated name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryUnknown]
}

// ParseCategory matches a name against the known categories,
// case-insensitively. Unrecognized names map to CategoryUnknown rather
// than an error; clients sending a category the deployment does not
// know about still get their product stored.
func ParseCategory(name string) Category {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for category, categoryName := range categoryNames {
		if categoryName == upper {
			return category
		}
	}
	return CategoryUnknown
}

// Value stores the category by name so the database rows stay readable.
func (c Category) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implements sql.Scanner for the name-based column.
func (c *Category) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*c = ParseCategory(v)
	case []byte:
		*c = ParseCategory(string(v))
	case nil:
		*c = CategoryUnknown
	default:
		return fmt.Errorf("cannot scan %T into Category", value)
	}
	return nil
}

// MarshalJSON renders the category as its name.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}
