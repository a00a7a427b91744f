package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zonebms/zone_backend/internal/core/domain"
)

// PostEntryRequest defines the data needed to post one balanced journal entry.
// Accounts are addressed by code so callers never deal in account ids.
type PostEntryRequest struct {
	DocumentID        string          `json:"document_id"`
	Description       string          `json:"description"`
	DebitAccountCode  string          `json:"debit_account_code" binding:"required"`
	CreditAccountCode string          `json:"credit_account_code" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
}

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID     string             `json:"account_id"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"account_type"`
	NormalBalance domain.BalanceSide `json:"normal_balance"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// JournalEntryResponse defines the data returned for a posted journal entry.
type JournalEntryResponse struct {
	EntryID         string          `json:"entry_id"`
	EntryNumber     string          `json:"entry_number"`
	DocumentID      string          `json:"document_id,omitempty"`
	Description     string          `json:"description"`
	DebitAccountID  string          `json:"debit_account_id"`
	CreditAccountID string          `json:"credit_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	DocumentID string `form:"document_id"`
	Limit      int    `form:"limit,default=50"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		NormalBalance: acc.NormalBalance,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		UpdatedAt:     acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:         entry.EntryID,
		EntryNumber:     entry.EntryNumber,
		DocumentID:      entry.DocumentID,
		Description:     entry.Description,
		DebitAccountID:  entry.DebitAccountID,
		CreditAccountID: entry.CreditAccountID,
		Amount:          entry.Amount,
		Status:          string(entry.Status),
		CreatedAt:       entry.CreatedAt,
	}
}

// ToListJournalEntryResponse converts a slice of domain.JournalEntry to a slice of JournalEntryResponse DTOs.
func ToListJournalEntryResponse(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
