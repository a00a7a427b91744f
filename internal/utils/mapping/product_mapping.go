package mapping

import (
	"github.com/zonebms/zone_backend/internal/core/domain"
	"github.com/zonebms/zone_backend/internal/core/ports/repositories"
)

// ToRecordProduct converts a domain Product to its stored record fields.
func ToRecordProduct(p domain.Product) repositories.Record {
	return repositories.Record{
		"name":  p.Name,
		"sku":   p.SKU,
		"price": p.Price,
		"cost":  p.Cost,
		"stock": p.Stock,
	}
}

// ToDomainProduct converts a stored record into a domain Product.
func ToDomainProduct(r repositories.Record) domain.Product {
	return domain.Product{
		ProductID: String(r, "id"),
		Name:      String(r, "name"),
		SKU:       String(r, "sku"),
		Price:     Decimal(r, "price"),
		Cost:      Decimal(r, "cost"),
		Stock:     Decimal(r, "stock"),
		AuditFields: domain.AuditFields{
			CreatedAt: Time(r, "created_at"),
			UpdatedAt: Time(r, "updated_at"),
		},
	}
}
