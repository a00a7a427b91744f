package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zonebms/zone_backend/internal/apperrors"
	"github.com/zonebms/zone_backend/internal/core/domain"
	portsrepo "github.com/zonebms/zone_backend/internal/core/ports/repositories"
	portssvc "github.com/zonebms/zone_backend/internal/core/ports/services"
	"github.com/zonebms/zone_backend/internal/dto"
	"github.com/zonebms/zone_backend/internal/utils/mapping"
)

type lifecycleService struct {
	BaseService
	store  portsrepo.DocumentStore
	ledger portssvc.LedgerSvcFacade
	stock  *stockManager
}

// NewLifecycleService creates the transition engine over the document store
// and the ledger poster.
func NewLifecycleService(store portsrepo.DocumentStore, ledger portssvc.LedgerSvcFacade) portssvc.LifecycleSvcFacade {
	return &lifecycleService{
		store:  store,
		ledger: ledger,
		stock:  newStockManager(store),
	}
}

// Ensure lifecycleService implements the LifecycleSvcFacade interface
var _ portssvc.LifecycleSvcFacade = (*lifecycleService)(nil)

// Transition moves a document to target. Side effects run before the status
// write, and any side-effect failure blocks the write, so a committed status
// always has its stock and ledger effects applied. The final write is
// conditional on the old status, which stops two concurrent transitions from
// both applying their effects.
func (s *lifecycleService) Transition(ctx context.Context, kind domain.DocumentKind, documentID string, target domain.Status, extras dto.TransitionExtras) (*dto.TransitionResult, error) {
	spec, ok := domain.SpecFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}

	record, err := s.store.Get(ctx, spec.Collection, documentID)
	if err != nil {
		return nil, err
	}
	doc := mapping.ToDomainDocument(kind, record)
	if err := s.NormalizeStatus(ctx, kind, &doc); err != nil {
		return nil, err
	}
	from := doc.Status

	if !spec.IsKnownStatus(target) {
		return nil, fmt.Errorf("%w: %q is not a valid %s status", apperrors.ErrValidation, target, kind)
	}
	if !spec.CanTransition(from, target) {
		return nil, fmt.Errorf("%w: cannot move %s from %s to %s", apperrors.ErrInvalidTransition, kind, from, target)
	}

	fields := portsrepo.Record{"status": string(target)}
	undo, err := s.applySideEffects(ctx, spec, &doc, from, target, extras, fields)
	if err != nil {
		s.unwind(ctx, kind, documentID, undo)
		return nil, err
	}

	cond := portsrepo.Condition{Field: "status", Op: portsrepo.CondEq, Value: string(from)}
	updated, err := s.store.UpdateWhere(ctx, spec.Collection, documentID, cond, fields)
	if err != nil {
		// The status did not commit, so the side effects must not stand.
		s.unwind(ctx, kind, documentID, undo)
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s %s changed status concurrently", apperrors.ErrConflict, kind, documentID)
		}
		return nil, err
	}

	result := mapping.ToDomainDocument(kind, updated)
	s.LogInfo(ctx, "Document transitioned",
		slog.String("kind", string(kind)),
		slog.String("document_id", documentID),
		slog.String("number", result.Number),
		slog.String("from", string(from)),
		slog.String("to", string(target)))
	return &dto.TransitionResult{Document: &result, OldStatus: from, NewStatus: target}, nil
}

// applySideEffects runs the stock and ledger work for one (kind, from, target)
// edge and collects any derived fields into the pending status write. Every
// applied effect pairs with a compensation in the returned undo list, so a
// transition that fails to commit its status can take its effects back out.
// Edges not listed here are pure status writes.
func (s *lifecycleService) applySideEffects(ctx context.Context, spec domain.KindSpec, doc *domain.Document, from, target domain.Status, extras dto.TransitionExtras, fields portsrepo.Record) ([]func(context.Context) error, error) {
	var undo []func(context.Context) error
	items := doc.Items

	switch spec.Kind {
	case domain.KindSalesOrder:
		switch {
		case from == domain.StatusDraft && target == domain.StatusConfirmed:
			if err := s.stock.Reserve(ctx, items); err != nil {
				return undo, err
			}
			undo = append(undo, func(ctx context.Context) error { return s.stock.Release(ctx, items) })
		case target == domain.StatusCancelled && (from == domain.StatusConfirmed || from == domain.StatusProcessing):
			if err := s.stock.Release(ctx, items); err != nil {
				return undo, err
			}
			undo = append(undo, func(ctx context.Context) error { return s.stock.Deduct(ctx, items) })
		case target == domain.StatusDelivered:
			fields["delivery_date"] = dateOrToday(extras.DeliveryDate)
		}

	case domain.KindPurchaseOrder:
		if target == domain.StatusReceived {
			if err := s.stock.Receive(ctx, items); err != nil {
				return undo, err
			}
			undo = append(undo, func(ctx context.Context) error { return s.stock.Deduct(ctx, items) })
		}

	case domain.KindSalesInvoice:
		switch target {
		case domain.StatusPending:
			entry, err := s.ledger.Post(ctx, dto.PostEntryRequest{
				DocumentID:        doc.ID,
				Description:       fmt.Sprintf("Sales invoice %s", doc.Number),
				DebitAccountCode:  domain.AccountAccountsReceivable,
				CreditAccountCode: domain.AccountSalesRevenue,
				Amount:            doc.TotalAmount,
			}, doc.CreatedBy)
			if err != nil {
				return undo, err
			}
			undo = append(undo, s.reversalOf(entry, doc.CreatedBy))
		case domain.StatusPaid:
			paid := paidOrTotal(extras.PaidAmount, doc.TotalAmount)
			undoPurchase, err := s.recordCustomerPurchase(ctx, spec, doc, paid)
			if err != nil {
				return undo, err
			}
			if undoPurchase != nil {
				undo = append(undo, undoPurchase)
			}
			entry, err := s.ledger.Post(ctx, dto.PostEntryRequest{
				DocumentID:        doc.ID,
				Description:       fmt.Sprintf("Payment for sales invoice %s", doc.Number),
				DebitAccountCode:  domain.AccountCash,
				CreditAccountCode: domain.AccountAccountsReceivable,
				Amount:            paid,
			}, doc.CreatedBy)
			if err != nil {
				return undo, err
			}
			undo = append(undo, s.reversalOf(entry, doc.CreatedBy))
			fields["paid_amount"] = paid
		}

	case domain.KindPurchaseInvoice:
		if target == domain.StatusPaid {
			paid := paidOrTotal(extras.PaidAmount, doc.TotalAmount)
			entry, err := s.ledger.Post(ctx, dto.PostEntryRequest{
				DocumentID:        doc.ID,
				Description:       fmt.Sprintf("Payment for purchase invoice %s", doc.Number),
				DebitAccountCode:  domain.AccountAccountsPayable,
				CreditAccountCode: domain.AccountCash,
				Amount:            paid,
			}, doc.CreatedBy)
			if err != nil {
				return undo, err
			}
			undo = append(undo, s.reversalOf(entry, doc.CreatedBy))
			fields["paid_amount"] = paid
		}

	case domain.KindQuotation:
		switch {
		case from == domain.StatusDraft && target == domain.StatusSent:
			fields["sent_date"] = today()
		case from == domain.StatusSent && target == domain.StatusAccepted:
			fields["accepted_date"] = today()
		}
	}
	return undo, nil
}

// unwind rolls back a transition's side effects, newest first. Unwind
// failures are logged; the caller reports the error that triggered the
// rollback.
func (s *lifecycleService) unwind(ctx context.Context, kind domain.DocumentKind, documentID string, undo []func(context.Context) error) {
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i](ctx); err != nil {
			s.LogError(ctx, err, "Failed to unwind side effect of uncommitted transition",
				slog.String("kind", string(kind)),
				slog.String("document_id", documentID))
		}
	}
}

// reversalOf builds the compensation that posts the mirror image of entry.
// Account ids equal their well-known codes, so the entry's legs feed straight
// back into Post.
func (s *lifecycleService) reversalOf(entry *domain.JournalEntry, creatorID string) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.ledger.Post(ctx, dto.PostEntryRequest{
			DocumentID:        entry.DocumentID,
			Description:       "Reversal of " + entry.EntryNumber,
			DebitAccountCode:  entry.CreditAccountID,
			CreditAccountCode: entry.DebitAccountID,
			Amount:            entry.Amount,
		}, creatorID)
		return err
	}
}

// NormalizeStatus applies read-time corrections and persists them: a Pending
// invoice past its due date becomes Overdue, a Draft or Sent quotation past
// valid_until becomes Expired.
func (s *lifecycleService) NormalizeStatus(ctx context.Context, kind domain.DocumentKind, doc *domain.Document) error {
	spec, ok := domain.SpecFor(kind)
	if !ok {
		return fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}

	var corrected domain.Status
	switch kind {
	case domain.KindSalesInvoice, domain.KindPurchaseInvoice:
		if doc.Status == domain.StatusPending && datePassed(doc.DueDate) {
			corrected = domain.StatusOverdue
		}
	case domain.KindQuotation:
		if (doc.Status == domain.StatusDraft || doc.Status == domain.StatusSent) && datePassed(doc.ValidUntil) {
			corrected = domain.StatusExpired
		}
	}
	if corrected == "" {
		return nil
	}

	cond := portsrepo.Condition{Field: "status", Op: portsrepo.CondEq, Value: string(doc.Status)}
	updated, err := s.store.UpdateWhere(ctx, spec.Collection, doc.ID, cond, portsrepo.Record{"status": string(corrected)})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// A concurrent writer moved the document first, read its word.
			record, getErr := s.store.Get(ctx, spec.Collection, doc.ID)
			if getErr != nil {
				return getErr
			}
			*doc = mapping.ToDomainDocument(kind, record)
			return nil
		}
		return err
	}
	*doc = mapping.ToDomainDocument(kind, updated)
	s.LogDebug(ctx, "Corrected document status on read",
		slog.String("kind", string(kind)),
		slog.String("document_id", doc.ID),
		slog.String("status", string(corrected)))
	return nil
}

// recordCustomerPurchase folds a payment into the customer's running totals
// and returns the compensation that takes it back out. A missing customer
// blocks the payment, an invoice without a customer does not.
func (s *lifecycleService) recordCustomerPurchase(ctx context.Context, spec domain.KindSpec, doc *domain.Document, paid decimal.Decimal) (func(context.Context) error, error) {
	if doc.PartyID == "" {
		return nil, nil
	}
	record, err := s.store.Get(ctx, spec.PartyStore, doc.PartyID)
	if err != nil {
		return nil, fmt.Errorf("customer %s for %s: %w", doc.PartyID, doc.Number, err)
	}
	priorPurchase := mapping.String(record, "last_purchase")
	if _, err := s.store.Increment(ctx, spec.PartyStore, doc.PartyID, "total_purchases", paid); err != nil {
		return nil, err
	}
	if _, err := s.store.Update(ctx, spec.PartyStore, doc.PartyID, portsrepo.Record{"last_purchase": today()}); err != nil {
		return nil, err
	}
	undo := func(ctx context.Context) error {
		if _, err := s.store.Increment(ctx, spec.PartyStore, doc.PartyID, "total_purchases", paid.Neg()); err != nil {
			return err
		}
		_, err := s.store.Update(ctx, spec.PartyStore, doc.PartyID, portsrepo.Record{"last_purchase": priorPurchase})
		return err
	}
	return undo, nil
}

func paidOrTotal(paid *decimal.Decimal, total decimal.Decimal) decimal.Decimal {
	if paid != nil && paid.IsPositive() {
		return *paid
	}
	return total
}

func today() string {
	return time.Now().UTC().Format(domain.DateLayout)
}

func dateOrToday(date string) string {
	if date == "" {
		return today()
	}
	return date
}

// datePassed reports whether a DateLayout string lies strictly before today.
// Absent or malformed dates never trigger corrections.
func datePassed(date string) bool {
	if date == "" {
		return false
	}
	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return false
	}
	now := time.Now().UTC()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return parsed.Before(startOfToday)
}
