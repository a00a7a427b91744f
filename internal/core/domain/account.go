package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide is the side on which an account's balance conventionally grows.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// Account is a chart-of-accounts entry. The ledger poster bootstraps the
// well-known accounts lazily on first reference and mutates only Balance
// afterwards, always as a delta.
type Account struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"` // fixed well-known value, e.g. 1110
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance BalanceSide     `json:"normalBalance"`
	Balance       decimal.Decimal `json:"balance"`
	AuditFields
}

// AccountCollection is the document store collection holding accounts.
const AccountCollection = "accounts"

// Well-known chart-of-accounts codes bootstrapped on first use.
const (
	AccountCash               = "1110"
	AccountAccountsReceivable = "1200"
	AccountAccountsPayable    = "2100"
	AccountSalesRevenue       = "4000"
	AccountPurchaseExpense    = "5100"
)

// WellKnownAccount describes one bootstrappable chart-of-accounts entry.
type WellKnownAccount struct {
	Code          string
	Name          string
	AccountType   AccountType
	NormalBalance BalanceSide
}

// WellKnownAccounts is the fixed bootstrap table for lazy account creation.
var WellKnownAccounts = map[string]WellKnownAccount{
	AccountCash:               {Code: AccountCash, Name: "Cash", AccountType: Asset, NormalBalance: DebitSide},
	AccountAccountsReceivable: {Code: AccountAccountsReceivable, Name: "Accounts Receivable", AccountType: Asset, NormalBalance: DebitSide},
	AccountAccountsPayable:    {Code: AccountAccountsPayable, Name: "Accounts Payable", AccountType: Liability, NormalBalance: CreditSide},
	AccountSalesRevenue:       {Code: AccountSalesRevenue, Name: "Sales Revenue", AccountType: Revenue, NormalBalance: CreditSide},
	AccountPurchaseExpense:    {Code: AccountPurchaseExpense, Name: "Purchase Expense", AccountType: Expense, NormalBalance: DebitSide},
}
