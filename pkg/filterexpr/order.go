package filterexpr

import (
	"fmt"
	"strings"
)

// Order is a parsed order_by clause.
type Order struct {
	Key  string
	Desc bool
}

// OrderSchema whitelists order keys and carries the default.
type OrderSchema struct {
	Default     string
	DefaultDesc bool
	Keys        []string
}

// ParseOrderBy validates an order_by input ("key", "key desc", "key asc")
// against the schema. An empty input returns the default.
func ParseOrderBy(raw string, schema OrderSchema) (Order, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Order{Key: schema.Default, Desc: schema.DefaultDesc}, nil
	}

	parts := strings.Fields(raw)
	if len(parts) > 2 {
		return Order{}, fmt.Errorf("invalid order_by %q", raw)
	}

	key := parts[0]
	allowed := false
	for _, candidate := range schema.Keys {
		if candidate == key {
			allowed = true
			break
		}
	}
	if !allowed {
		return Order{}, fmt.Errorf("field %q cannot be used for ordering", key)
	}

	order := Order{Key: key}
	if len(parts) == 2 {
		switch strings.ToLower(parts[1]) {
		case "asc":
		case "desc":
			order.Desc = true
		default:
			return Order{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
		}
	}
	return order, nil
}
