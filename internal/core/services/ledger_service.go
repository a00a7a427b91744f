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
	"github.com/zonebms/zone_backend/internal/utils/accounting"
	"github.com/zonebms/zone_backend/internal/utils/mapping"
)

type ledgerService struct {
	BaseService
	store    portsrepo.DocumentStore
	sequence portssvc.SequenceSvcFacade
}

// NewLedgerService creates the double-entry poster over the document store.
func NewLedgerService(store portsrepo.DocumentStore, sequence portssvc.SequenceSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{store: store, sequence: sequence}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Post writes one balanced journal entry and applies the balance delta to
// both legs. A leg on its account's normal side increases the balance, the
// opposite side decreases it. Balances move through atomic increments so
// concurrent postings to the same account stay correct.
func (s *ledgerService) Post(ctx context.Context, req dto.PostEntryRequest, creatorID string) (*domain.JournalEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: posting amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
	}
	if req.DebitAccountCode == req.CreditAccountCode {
		return nil, fmt.Errorf("%w: debit and credit accounts must differ", apperrors.ErrValidation)
	}

	debit, err := s.ResolveOrBootstrapAccount(ctx, req.DebitAccountCode)
	if err != nil {
		return nil, err
	}
	credit, err := s.ResolveOrBootstrapAccount(ctx, req.CreditAccountCode)
	if err != nil {
		return nil, err
	}

	entryNumber, err := s.sequence.Next(ctx, domain.JournalEntryPrefix, time.Now().UTC().Year())
	if err != nil {
		return nil, fmt.Errorf("failed to number journal entry: %w", err)
	}

	entry := domain.JournalEntry{
		EntryNumber:     entryNumber,
		DocumentID:      req.DocumentID,
		Description:     req.Description,
		DebitAccountID:  debit.AccountID,
		CreditAccountID: credit.AccountID,
		Amount:          req.Amount,
		Status:          domain.Posted,
	}
	entry.CreatedBy = creatorID

	record, err := s.store.Create(ctx, domain.JournalEntryCollection, mapping.ToRecordJournalEntry(entry))
	if err != nil {
		return nil, fmt.Errorf("failed to write journal entry %s: %w", entryNumber, err)
	}
	created := mapping.ToDomainJournalEntry(record)

	if err := s.moveBalance(ctx, debit, domain.DebitSide, req.Amount); err != nil {
		return nil, err
	}
	if err := s.moveBalance(ctx, credit, domain.CreditSide, req.Amount); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Posted journal entry",
		slog.String("entry_number", entryNumber),
		slog.String("debit_account", debit.Code),
		slog.String("credit_account", credit.Code),
		slog.String("amount", req.Amount.String()))
	return &created, nil
}

// ResolveOrBootstrapAccount loads an account by code, creating it from the
// well-known table on first reference.
func (s *ledgerService) ResolveOrBootstrapAccount(ctx context.Context, code string) (*domain.Account, error) {
	record, err := s.store.FindOne(ctx, domain.AccountCollection, portsrepo.Filter{"code": code})
	if err == nil {
		account := mapping.ToDomainAccount(record)
		return &account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	known, ok := domain.WellKnownAccounts[code]
	if !ok {
		return nil, fmt.Errorf("%w: account code %q is not a known chart-of-accounts entry", apperrors.ErrValidation, code)
	}
	account := domain.Account{
		Code:          known.Code,
		Name:          known.Name,
		AccountType:   known.AccountType,
		NormalBalance: known.NormalBalance,
		Balance:       decimal.Zero,
	}
	fields := mapping.ToRecordAccount(account)
	fields["id"] = known.Code
	record, err = s.store.Create(ctx, domain.AccountCollection, fields)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Bootstrapped concurrently, load the winner.
		return s.GetAccountByCode(ctx, code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap account %s: %w", code, err)
	}
	created := mapping.ToDomainAccount(record)
	s.LogInfo(ctx, "Bootstrapped chart-of-accounts entry", slog.String("code", code), slog.String("name", known.Name))
	return &created, nil
}

// GetAccountByCode loads an account by its well-known code.
func (s *ledgerService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	record, err := s.store.FindOne(ctx, domain.AccountCollection, portsrepo.Filter{"code": code})
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", code, err)
	}
	account := mapping.ToDomainAccount(record)
	return &account, nil
}

// ListAccounts returns every chart-of-accounts entry ordered by code.
func (s *ledgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	records, err := s.store.List(ctx, domain.AccountCollection, nil, &portsrepo.Sort{Field: "code"}, 0)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccounts(records), nil
}

// GetEntryByID loads a single posted journal entry.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	record, err := s.store.Get(ctx, domain.JournalEntryCollection, entryID)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(record)
	return &entry, nil
}

// ListEntries returns posted journal entries, newest first, optionally
// narrowed to one originating document.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	filter := portsrepo.Filter{}
	if params.DocumentID != "" {
		filter["document_id"] = params.DocumentID
	}
	records, err := s.store.List(ctx, domain.JournalEntryCollection, filter, &portsrepo.Sort{Field: "created_at", Desc: true}, params.Limit)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainJournalEntries(records), nil
}

// moveBalance applies one leg's delta: positive on the account's normal side,
// negative on the opposite side.
func (s *ledgerService) moveBalance(ctx context.Context, account *domain.Account, side domain.BalanceSide, amount decimal.Decimal) error {
	delta := accounting.SignedDelta(side, account.NormalBalance, amount)
	if _, err := s.store.Increment(ctx, domain.AccountCollection, account.AccountID, "balance", delta); err != nil {
		return fmt.Errorf("failed to move balance on account %s: %w", account.Code, err)
	}
	return nil
}
