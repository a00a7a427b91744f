package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zonebms/zone_backend/internal/apperrors"
	"github.com/zonebms/zone_backend/internal/core/domain"
	portsrepo "github.com/zonebms/zone_backend/internal/core/ports/repositories"
	portssvc "github.com/zonebms/zone_backend/internal/core/ports/services"
	"github.com/zonebms/zone_backend/internal/dto"
	"github.com/zonebms/zone_backend/internal/utils/mapping"
)

type documentService struct {
	BaseService
	store     portsrepo.DocumentStore
	sequence  portssvc.SequenceSvcFacade
	lifecycle portssvc.LifecycleSvcFacade
	ledger    portssvc.LedgerSvcFacade
}

// NewDocumentService creates the document CRUD service.
func NewDocumentService(store portsrepo.DocumentStore, sequence portssvc.SequenceSvcFacade, lifecycle portssvc.LifecycleSvcFacade, ledger portssvc.LedgerSvcFacade) portssvc.DocumentSvcFacade {
	return &documentService{store: store, sequence: sequence, lifecycle: lifecycle, ledger: ledger}
}

// Ensure documentService implements the DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument numbers and persists a new document in its kind's initial
// status. Purchase invoices start life Pending, so their expense entry is
// posted here rather than on a later transition.
func (s *documentService) CreateDocument(ctx context.Context, kind domain.DocumentKind, req dto.CreateDocumentRequest, creatorID string) (*domain.Document, error) {
	spec, ok := domain.SpecFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", apperrors.ErrValidation)
	}

	doc := domain.Document{
		Kind:       kind,
		Status:     spec.InitialStatus,
		Notes:      req.Notes,
		OrderDate:  dateOrToday(req.OrderDate),
		DueDate:    req.DueDate,
		ValidUntil: req.ValidUntil,
	}
	doc.CreatedBy = creatorID
	if spec.PartyIDField == "vendor_id" {
		doc.PartyID = req.VendorID
		doc.PartyName = req.VendorName
	} else {
		doc.PartyID = req.CustomerID
		doc.PartyName = req.CustomerName
	}

	doc.Items = make([]domain.LineItem, len(req.Items))
	for i, line := range req.Items {
		item := domain.LineItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total,
		}
		if item.UnitPrice.IsZero() || item.ProductName == "" {
			s.fillFromCatalog(ctx, &item)
		}
		doc.Items[i] = item
	}
	doc.RecomputeTotals()

	number, err := s.sequence.Next(ctx, spec.Prefix, documentYear(doc.OrderDate))
	if err != nil {
		return nil, fmt.Errorf("failed to number %s: %w", kind, err)
	}
	doc.Number = number

	record, err := s.store.Create(ctx, spec.Collection, mapping.ToRecordDocument(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}
	created := mapping.ToDomainDocument(kind, record)

	if kind == domain.KindPurchaseInvoice {
		if _, err := s.ledger.Post(ctx, dto.PostEntryRequest{
			DocumentID:        created.ID,
			Description:       fmt.Sprintf("Purchase invoice %s", created.Number),
			DebitAccountCode:  domain.AccountPurchaseExpense,
			CreditAccountCode: domain.AccountAccountsPayable,
			Amount:            created.TotalAmount,
		}, creatorID); err != nil {
			// A Pending purchase invoice must not exist without its expense
			// entry, and leaving it would make the caller's retry a duplicate.
			if _, delErr := s.store.Delete(ctx, spec.Collection, created.ID); delErr != nil {
				s.LogError(ctx, delErr, "Failed to remove purchase invoice after posting failure",
					slog.String("document_id", created.ID))
			}
			return nil, fmt.Errorf("failed to post expense for %s: %w", created.Number, err)
		}
	}

	s.LogInfo(ctx, "Document created",
		slog.String("kind", string(kind)),
		slog.String("document_id", created.ID),
		slog.String("number", created.Number))
	return &created, nil
}

// GetDocumentByID loads one document, applying read-time status corrections.
func (s *documentService) GetDocumentByID(ctx context.Context, kind domain.DocumentKind, documentID string) (*domain.Document, error) {
	spec, ok := domain.SpecFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}
	record, err := s.store.Get(ctx, spec.Collection, documentID)
	if err != nil {
		return nil, err
	}
	doc := mapping.ToDomainDocument(kind, record)
	if err := s.lifecycle.NormalizeStatus(ctx, kind, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns documents of one kind, newest first, applying
// read-time status corrections to each.
func (s *documentService) ListDocuments(ctx context.Context, kind domain.DocumentKind, params dto.ListDocumentsParams) ([]domain.Document, error) {
	spec, ok := domain.SpecFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}
	filter := portsrepo.Filter{}
	if params.Status != "" {
		filter["status"] = params.Status
	}
	records, err := s.store.List(ctx, spec.Collection, filter, &portsrepo.Sort{Field: "created_at", Desc: true}, params.Limit)
	if err != nil {
		return nil, err
	}
	docs := mapping.ToDomainDocuments(kind, records)
	for i := range docs {
		if err := s.lifecycle.NormalizeStatus(ctx, kind, &docs[i]); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// DeleteDocument removes a document. Stock and ledger effects of past
// transitions are deliberately left in place.
func (s *documentService) DeleteDocument(ctx context.Context, kind domain.DocumentKind, documentID string) error {
	spec, ok := domain.SpecFor(kind)
	if !ok {
		return fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}
	deleted, err := s.store.Delete(ctx, spec.Collection, documentID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, documentID)
	}
	return nil
}

// fillFromCatalog fills a line's name and unit price from the product record.
// The product's unit cost is the fallback price for unpriced lines. A product
// missing from the catalog leaves the line as submitted.
func (s *documentService) fillFromCatalog(ctx context.Context, item *domain.LineItem) {
	record, err := s.store.Get(ctx, domain.ProductCollection, item.ProductID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up product for line item", slog.String("product_id", item.ProductID))
		}
		return
	}
	product := mapping.ToDomainProduct(record)
	if item.ProductName == "" {
		item.ProductName = product.Name
	}
	if item.UnitPrice.IsZero() {
		item.UnitPrice = product.Cost
	}
}

// documentYear scopes a document's number to the calendar year of its order
// date, falling back to the current year.
func documentYear(orderDate string) int {
	if parsed, err := time.Parse(domain.DateLayout, orderDate); err == nil {
		return parsed.Year()
	}
	return time.Now().UTC().Year()
}
