package domain

import (
	"strings"
	"time"
)

// Address is the shipping address captured with an order.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zipcode string `json:"zipcode"`
}

// LineColor is the snapshot of the chosen variant taken at order creation.
// It does not track later edits to the product's color data.
type LineColor struct {
	ColorName ColorName `json:"colorName"`
	Image     string    `json:"image,omitempty"`
}

// OrderLine references a product and a snapshotted color variant. Lines have
// no id of their own; the pair (ProductID, color name) is their effective key.
type OrderLine struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Color     LineColor `json:"color"`
}

type Order struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	Address         Address        `json:"address"`
	Products        []OrderLine    `json:"products"`
	TotalPriceCents int64          `json:"totalPriceCents"`
	IsPaid          bool           `json:"isPaid"`
	IsDelivered     bool           `json:"isDelivered"`
	ProductProgress map[string]int `json:"productProgress"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// SplitLineKey splits a composite "productId|colorName" line key.
func SplitLineKey(key string) (productID, colorName string) {
	productID, colorName, _ = strings.Cut(key, "|")
	return productID, colorName
}

// FindLine locates the line matching a product id and a single color display
// string (compared verbatim against all three snapshot renderings). Duplicate
// keys are not forbidden by the data model; the first match wins.
func (o Order) FindLine(productID, colorName string) (int, bool) {
	for i, line := range o.Products {
		if line.ProductID != productID {
			continue
		}
		n := line.Color.ColorName
		if n.EN == colorName || n.FR == colorName || n.AR == colorName {
			return i, true
		}
	}
	return 0, false
}
