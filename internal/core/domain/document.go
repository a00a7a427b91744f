package domain

import (
	"github.com/shopspring/decimal"
)

// Status is a document lifecycle state. The set of valid values depends on the
// document kind; KindSpec.Transitions is the single source of truth for which
// edges are legal.
type Status string

const (
	StatusDraft      Status = "Draft"
	StatusConfirmed  Status = "Confirmed"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusReceived   Status = "Received"
	StatusPending    Status = "Pending"
	StatusPaid       Status = "Paid"
	StatusOverdue    Status = "Overdue"
	StatusSent       Status = "Sent"
	StatusAccepted   Status = "Accepted"
	StatusRejected   Status = "Rejected"
	StatusExpired    Status = "Expired"
	StatusCancelled  Status = "Cancelled"
)

// LineItem is one line of a document: a product reference with a denormalized
// name, a quantity, a unit price and the computed line total.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Document is a sales/purchase order, sales/purchase invoice or quotation.
// The lifecycle engine owns Status; master data (products, accounts) is only
// referenced, never owned.
type Document struct {
	ID     string       `json:"id"`
	Kind   DocumentKind `json:"kind"`
	Number string       `json:"number"` // PREFIX-YYYY-NNNNNN, assigned at creation

	PartyID   string `json:"party_id"`   // customer or vendor id, per kind
	PartyName string `json:"party_name"` // denormalized at creation

	Items       []LineItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"` // sum of line totals

	Status Status `json:"status"`
	Notes  string `json:"notes"`

	// Business dates, DateLayout strings, empty when not applicable.
	OrderDate    string `json:"order_date,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
	ValidUntil   string `json:"valid_until,omitempty"`
	DeliveryDate string `json:"delivery_date,omitempty"`
	SentDate     string `json:"sent_date,omitempty"`
	AcceptedDate string `json:"accepted_date,omitempty"`

	// PaidAmount is written once, on the transition into Paid; nil before that.
	PaidAmount *decimal.Decimal `json:"paid_amount,omitempty"`

	AuditFields
}

// RecomputeTotals fills each line's Total (unit price x quantity) unless a
// non-zero total was supplied, then sets TotalAmount to the sum of line totals.
func (d *Document) RecomputeTotals() {
	sum := decimal.Zero
	for i := range d.Items {
		if d.Items[i].Total.IsZero() {
			d.Items[i].Total = d.Items[i].UnitPrice.Mul(d.Items[i].Quantity)
		}
		sum = sum.Add(d.Items[i].Total)
	}
	d.TotalAmount = sum
}
