package services

import (
	"context"

	"github.com/zonebms/zone_backend/internal/core/domain"
	"github.com/zonebms/zone_backend/internal/dto"
)

// LedgerSvcFacade defines double-entry posting and account access.
type LedgerSvcFacade interface {
	// Post writes one balanced journal entry and moves both account balances.
	Post(ctx context.Context, req dto.PostEntryRequest, creatorID string) (*domain.JournalEntry, error)
	ResolveOrBootstrapAccount(ctx context.Context, code string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error)
}
