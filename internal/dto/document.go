package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zonebms/zone_backend/internal/core/domain"
)

// LineItemRequest is one order, invoice or quotation line as submitted by the client.
// Total is optional; when zero it is computed as quantity * unit_price.
type LineItemRequest struct {
	ProductID   string          `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// CreateDocumentRequest defines the data needed to create a document of any kind.
// Customer fields apply to sales orders, sales invoices and quotations; vendor
// fields apply to purchase orders and purchase invoices.
type CreateDocumentRequest struct {
	CustomerID   string            `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	VendorID     string            `json:"vendor_id"`
	VendorName   string            `json:"vendor_name"`
	Items        []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	OrderDate    string            `json:"order_date"`
	DueDate      string            `json:"due_date"`
	ValidUntil   string            `json:"valid_until"`
	Notes        string            `json:"notes"`
}

// UpdateStatusRequest defines the data needed to move a document to a new status.
type UpdateStatusRequest struct {
	Status       string           `json:"status" binding:"required"`
	PaidAmount   *decimal.Decimal `json:"paid_amount"`
	DeliveryDate string           `json:"delivery_date"`
}

// TransitionExtras carries the optional payload of a status update into the
// lifecycle service.
type TransitionExtras struct {
	PaidAmount   *decimal.Decimal
	DeliveryDate string
}

// TransitionResult is what the lifecycle service reports back after a
// successful transition.
type TransitionResult struct {
	Document  *domain.Document
	OldStatus domain.Status
	NewStatus domain.Status
}

// ListDocumentsParams defines query parameters for listing documents of a kind.
type ListDocumentsParams struct {
	Status string `form:"status"`
	Limit  int    `form:"limit,default=50"`
}

// LineItemResponse mirrors domain.LineItem.
type LineItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// DocumentResponse defines the data returned for a document. Party and date
// fields that do not apply to the document's kind are omitted.
type DocumentResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	CustomerID   string             `json:"customer_id,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	VendorID     string             `json:"vendor_id,omitempty"`
	VendorName   string             `json:"vendor_name,omitempty"`
	Items        []LineItemResponse `json:"items"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Status       domain.Status      `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	OrderDate    string             `json:"order_date,omitempty"`
	DueDate      string             `json:"due_date,omitempty"`
	ValidUntil   string             `json:"valid_until,omitempty"`
	DeliveryDate string             `json:"delivery_date,omitempty"`
	SentDate     string             `json:"sent_date,omitempty"`
	AcceptedDate string             `json:"accepted_date,omitempty"`
	PaidAmount   *decimal.Decimal   `json:"paid_amount,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	CreatedBy    string             `json:"created_by,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// TransitionResponse defines the combined response for a status update.
type TransitionResponse struct {
	Message  string           `json:"message"`
	Document DocumentResponse `json:"document"`
}

// ToLineItemResponse converts a domain.LineItem to LineItemResponse DTO.
func ToLineItemResponse(item domain.LineItem) LineItemResponse {
	return LineItemResponse{
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Total:       item.Total,
	}
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO. The
// kind spec decides which party fields the response carries.
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	spec, _ := domain.SpecFor(doc.Kind)
	resp := DocumentResponse{
		ID:           doc.ID,
		Number:       doc.Number,
		TotalAmount:  doc.TotalAmount,
		Status:       doc.Status,
		Notes:        doc.Notes,
		OrderDate:    doc.OrderDate,
		DueDate:      doc.DueDate,
		ValidUntil:   doc.ValidUntil,
		DeliveryDate: doc.DeliveryDate,
		SentDate:     doc.SentDate,
		AcceptedDate: doc.AcceptedDate,
		PaidAmount:   doc.PaidAmount,
		CreatedAt:    doc.CreatedAt,
		CreatedBy:    doc.CreatedBy,
		UpdatedAt:    doc.UpdatedAt,
	}
	if spec.PartyIDField == "vendor_id" {
		resp.VendorID = doc.PartyID
		resp.VendorName = doc.PartyName
	} else {
		resp.CustomerID = doc.PartyID
		resp.CustomerName = doc.PartyName
	}
	resp.Items = make([]LineItemResponse, len(doc.Items))
	for i, item := range doc.Items {
		resp.Items[i] = ToLineItemResponse(item)
	}
	return resp
}

// ToListDocumentResponse converts a slice of domain.Document to a slice of DocumentResponse DTOs.
func ToListDocumentResponse(docs []domain.Document) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return res
}
