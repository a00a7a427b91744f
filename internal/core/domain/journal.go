package domain

import (
	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted JournalStatus = "Posted"
)

// JournalEntry is an immutable two-leg ledger posting created as a side
// effect of a document status transition. The single Amount is posted to both
// legs, so debits always equal credits by construction.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`
	EntryNumber     string          `json:"entryNumber"` // JE-YYYY-NNNNNN
	DocumentID      string          `json:"documentID"`  // originating document
	Description     string          `json:"description"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	Status          JournalStatus   `json:"status"`
	AuditFields
}

const (
	// JournalEntryCollection is the document store collection for entries.
	JournalEntryCollection = "journal_entries"
	// JournalEntryPrefix is the number prefix for journal entries.
	JournalEntryPrefix = "JE"
)
