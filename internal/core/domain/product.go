package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog item referenced by document line items. The lifecycle
// engine mutates only Stock, through reservations, releases and receipts.
type Product struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"` // selling price
	Cost      decimal.Decimal `json:"cost"`  // fallback unit price for unpriced lines
	Stock     decimal.Decimal `json:"stock"`
	AuditFields
}

// ProductCollection is the document store collection holding products.
const ProductCollection = "products"

// ReceivedPriceMarkup is applied to a line's unit cost when a purchase order
// receipt auto-creates a product that is not yet in the catalog.
var ReceivedPriceMarkup = decimal.NewFromFloat(1.2)
