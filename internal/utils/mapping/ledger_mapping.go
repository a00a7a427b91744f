package mapping

import (
	"github.com/zonebms/zone_backend/internal/core/domain"
	"github.com/zonebms/zone_backend/internal/core/ports/repositories"
)

// ToRecordAccount converts a domain Account to its stored record fields.
func ToRecordAccount(a domain.Account) repositories.Record {
	return repositories.Record{
		"code":           a.Code,
		"name":           a.Name,
		"account_type":   string(a.AccountType),
		"normal_balance": string(a.NormalBalance),
		"balance":        a.Balance,
	}
}

// ToDomainAccount converts a stored record into a domain Account.
func ToDomainAccount(r repositories.Record) domain.Account {
	return domain.Account{
		AccountID:     String(r, "id"),
		Code:          String(r, "code"),
		Name:          String(r, "name"),
		AccountType:   domain.AccountType(String(r, "account_type")),
		NormalBalance: domain.BalanceSide(String(r, "normal_balance")),
		Balance:       Decimal(r, "balance"),
		AuditFields: domain.AuditFields{
			CreatedAt: Time(r, "created_at"),
			UpdatedAt: Time(r, "updated_at"),
		},
	}
}

// ToDomainAccounts converts a slice of account records.
func ToDomainAccounts(records []repositories.Record) []domain.Account {
	accounts := make([]domain.Account, len(records))
	for i, r := range records {
		accounts[i] = ToDomainAccount(r)
	}
	return accounts
}

// ToRecordJournalEntry converts a domain JournalEntry to its stored record fields.
func ToRecordJournalEntry(e domain.JournalEntry) repositories.Record {
	r := repositories.Record{
		"entry_number":      e.EntryNumber,
		"description":       e.Description,
		"debit_account_id":  e.DebitAccountID,
		"credit_account_id": e.CreditAccountID,
		"amount":            e.Amount,
		"status":            string(e.Status),
		"created_by":        e.CreatedBy,
	}
	if e.DocumentID != "" {
		r["document_id"] = e.DocumentID
	}
	return r
}

// ToDomainJournalEntry converts a stored record into a domain JournalEntry.
func ToDomainJournalEntry(r repositories.Record) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         String(r, "id"),
		EntryNumber:     String(r, "entry_number"),
		DocumentID:      String(r, "document_id"),
		Description:     String(r, "description"),
		DebitAccountID:  String(r, "debit_account_id"),
		CreditAccountID: String(r, "credit_account_id"),
		Amount:          Decimal(r, "amount"),
		Status:          domain.JournalStatus(String(r, "status")),
		AuditFields: domain.AuditFields{
			CreatedAt: Time(r, "created_at"),
			CreatedBy: String(r, "created_by"),
			UpdatedAt: Time(r, "updated_at"),
		},
	}
}

// ToDomainJournalEntries converts a slice of journal entry records.
func ToDomainJournalEntries(records []repositories.Record) []domain.JournalEntry {
	entries := make([]domain.JournalEntry, len(records))
	for i, r := range records {
		entries[i] = ToDomainJournalEntry(r)
	}
	return entries
}
