package mapping

import (
	"github.com/zonebms/zone_backend/internal/core/domain"
	"github.com/zonebms/zone_backend/internal/core/ports/repositories"
)

// ToRecordDocument converts a domain Document to the record fields its kind's
// collection stores. The store owns id, created_at and updated_at, so those
// are left out here.
func ToRecordDocument(d domain.Document) repositories.Record {
	spec, _ := domain.SpecFor(d.Kind)
	items := make([]any, len(d.Items))
	for i, item := range d.Items {
		items[i] = map[string]any{
			"product_id":   item.ProductID,
			"product_name": item.ProductName,
			"quantity":     item.Quantity,
			"unit_price":   item.UnitPrice,
			"total":        item.Total,
		}
	}
	r := repositories.Record{
		spec.NumberField:  d.Number,
		spec.PartyIDField: d.PartyID,
		spec.PartyName:    d.PartyName,
		"items":           items,
		"total_amount":    d.TotalAmount,
		"status":          string(d.Status),
		"notes":           d.Notes,
		"created_by":      d.CreatedBy,
	}
	setIfPresent(r, "order_date", d.OrderDate)
	setIfPresent(r, "due_date", d.DueDate)
	setIfPresent(r, "valid_until", d.ValidUntil)
	setIfPresent(r, "delivery_date", d.DeliveryDate)
	setIfPresent(r, "sent_date", d.SentDate)
	setIfPresent(r, "accepted_date", d.AcceptedDate)
	if d.PaidAmount != nil {
		r["paid_amount"] = *d.PaidAmount
	}
	return r
}

// ToDomainDocument converts a stored record back into a domain Document.
func ToDomainDocument(kind domain.DocumentKind, r repositories.Record) domain.Document {
	spec, _ := domain.SpecFor(kind)
	d := domain.Document{
		ID:           String(r, "id"),
		Kind:         kind,
		Number:       String(r, spec.NumberField),
		PartyID:      String(r, spec.PartyIDField),
		PartyName:    String(r, spec.PartyName),
		TotalAmount:  Decimal(r, "total_amount"),
		Status:       domain.Status(String(r, "status")),
		Notes:        String(r, "notes"),
		OrderDate:    String(r, "order_date"),
		DueDate:      String(r, "due_date"),
		ValidUntil:   String(r, "valid_until"),
		DeliveryDate: String(r, "delivery_date"),
		SentDate:     String(r, "sent_date"),
		AcceptedDate: String(r, "accepted_date"),
		PaidAmount:   DecimalPtr(r, "paid_amount"),
		AuditFields: domain.AuditFields{
			CreatedAt: Time(r, "created_at"),
			CreatedBy: String(r, "created_by"),
			UpdatedAt: Time(r, "updated_at"),
		},
	}
	if raw, ok := r["items"].([]any); ok {
		d.Items = make([]domain.LineItem, 0, len(raw))
		for _, entry := range raw {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			d.Items = append(d.Items, domain.LineItem{
				ProductID:   String(item, "product_id"),
				ProductName: String(item, "product_name"),
				Quantity:    Decimal(item, "quantity"),
				UnitPrice:   Decimal(item, "unit_price"),
				Total:       Decimal(item, "total"),
			})
		}
	}
	return d
}

// ToDomainDocuments converts a slice of records for one kind.
func ToDomainDocuments(kind domain.DocumentKind, records []repositories.Record) []domain.Document {
	docs := make([]domain.Document, len(records))
	for i, r := range records {
		docs[i] = ToDomainDocument(kind, r)
	}
	return docs
}

func setIfPresent(r repositories.Record, key, value string) {
	if value != "" {
		r[key] = value
	}
}
