package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/zonebms/zone_backend/internal/apperrors"
	"github.com/zonebms/zone_backend/internal/core/domain"
	portssvc "github.com/zonebms/zone_backend/internal/core/ports/services"
	"github.com/zonebms/zone_backend/internal/core/services"
	"github.com/zonebms/zone_backend/internal/dto"
	"github.com/zonebms/zone_backend/internal/repositories/memory"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	store   *memory.DocumentStore
	service portssvc.LedgerSvcFacade
	ctx     context.Context
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.store = memory.NewDocumentStore()
	sequence := services.NewSequenceService(suite.store)
	suite.service = services.NewLedgerService(suite.store, sequence)
	suite.ctx = context.Background()
}

func (suite *LedgerServiceTestSuite) balance(code string) decimal.Decimal {
	account, err := suite.service.GetAccountByCode(suite.ctx, code)
	suite.Require().NoError(err)
	return account.Balance
}

func (suite *LedgerServiceTestSuite) TestResolveOrBootstrapAccount_CreatesWellKnown() {
	account, err := suite.service.ResolveOrBootstrapAccount(suite.ctx, domain.AccountCash)
	suite.Require().NoError(err)
	suite.Equal("Cash", account.Name)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Equal(domain.DebitSide, account.NormalBalance)
	suite.True(account.Balance.IsZero())

	// Second resolve loads the same account instead of creating another.
	again, err := suite.service.ResolveOrBootstrapAccount(suite.ctx, domain.AccountCash)
	suite.Require().NoError(err)
	suite.Equal(account.AccountID, again.AccountID)

	accounts, err := suite.service.ListAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(accounts, 1)
}

func (suite *LedgerServiceTestSuite) TestResolveOrBootstrapAccount_UnknownCode() {
	_, err := suite.service.ResolveOrBootstrapAccount(suite.ctx, "9999")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPost_MovesBothBalances() {
	amount := decimal.NewFromInt(15000000)
	entry, err := suite.service.Post(suite.ctx, dto.PostEntryRequest{
		DocumentID:        "doc-1",
		Description:       "Sales invoice INV-2026-000001",
		DebitAccountCode:  domain.AccountAccountsReceivable,
		CreditAccountCode: domain.AccountSalesRevenue,
		Amount:            amount,
	}, "tester")

	suite.Require().NoError(err)
	suite.Regexp(`^JE-\d{4}-000001$`, entry.EntryNumber)
	suite.Equal(domain.Posted, entry.Status)
	suite.Equal("doc-1", entry.DocumentID)
	suite.True(amount.Equal(entry.Amount))

	// AR is debit-normal and was debited, Revenue is credit-normal and was
	// credited: both balances grow by the posted amount.
	suite.True(amount.Equal(suite.balance(domain.AccountAccountsReceivable)))
	suite.True(amount.Equal(suite.balance(domain.AccountSalesRevenue)))
}

func (suite *LedgerServiceTestSuite) TestPost_CreditAgainstDebitNormalDecreases() {
	amount := decimal.NewFromInt(15000000)
	_, err := suite.service.Post(suite.ctx, dto.PostEntryRequest{
		DebitAccountCode:  domain.AccountAccountsReceivable,
		CreditAccountCode: domain.AccountSalesRevenue,
		Amount:            amount,
	}, "tester")
	suite.Require().NoError(err)

	// Payment: debit Cash, credit AR. AR returns to zero.
	_, err = suite.service.Post(suite.ctx, dto.PostEntryRequest{
		DebitAccountCode:  domain.AccountCash,
		CreditAccountCode: domain.AccountAccountsReceivable,
		Amount:            amount,
	}, "tester")
	suite.Require().NoError(err)

	suite.True(suite.balance(domain.AccountAccountsReceivable).IsZero())
	suite.True(amount.Equal(suite.balance(domain.AccountCash)))
}

func (suite *LedgerServiceTestSuite) TestPost_EntryNumbersIncrement() {
	for i := 0; i < 2; i++ {
		_, err := suite.service.Post(suite.ctx, dto.PostEntryRequest{
			DebitAccountCode:  domain.AccountCash,
			CreditAccountCode: domain.AccountSalesRevenue,
			Amount:            decimal.NewFromInt(100),
		}, "tester")
		suite.Require().NoError(err)
	}

	entries, err := suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{})
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	numbers := []string{entries[0].EntryNumber, entries[1].EntryNumber}
	suite.Contains(numbers[0]+numbers[1], "000001")
	suite.Contains(numbers[0]+numbers[1], "000002")
}

func (suite *LedgerServiceTestSuite) TestPost_RejectsNonPositiveAmount() {
	_, err := suite.service.Post(suite.ctx, dto.PostEntryRequest{
		DebitAccountCode:  domain.AccountCash,
		CreditAccountCode: domain.AccountSalesRevenue,
		Amount:            decimal.Zero,
	}, "tester")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPost_RejectsSameAccountBothLegs() {
	_, err := suite.service.Post(suite.ctx, dto.PostEntryRequest{
		DebitAccountCode:  domain.AccountCash,
		CreditAccountCode: domain.AccountCash,
		Amount:            decimal.NewFromInt(10),
	}, "tester")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestListEntries_FiltersByDocument() {
	for _, docID := range []string{"doc-a", "doc-a", "doc-b"} {
		_, err := suite.service.Post(suite.ctx, dto.PostEntryRequest{
			DocumentID:        docID,
			DebitAccountCode:  domain.AccountCash,
			CreditAccountCode: domain.AccountSalesRevenue,
			Amount:            decimal.NewFromInt(10),
		}, "tester")
		suite.Require().NoError(err)
	}

	entries, err := suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{DocumentID: "doc-a"})
	suite.Require().NoError(err)
	suite.Len(entries, 2)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
