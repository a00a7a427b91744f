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
	"github.com/zonebms/zone_backend/internal/utils/mapping"
)

type DocumentServiceTestSuite struct {
	suite.Suite
	store    *memory.DocumentStore
	services *portssvc.ServiceContainer
	ctx      context.Context
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.store = memory.NewDocumentStore()
	suite.services = services.NewServiceContainer(suite.store)
	suite.ctx = context.Background()
}

func (suite *DocumentServiceTestSuite) seedProduct(id, name string, cost int64) {
	fields := mapping.ToRecordProduct(domain.Product{
		Name:  name,
		Cost:  decimal.NewFromInt(cost),
		Price: decimal.NewFromInt(cost * 2),
		Stock: decimal.NewFromInt(100),
	})
	fields["id"] = id
	_, err := suite.store.Create(suite.ctx, domain.ProductCollection, fields)
	suite.Require().NoError(err)
}

func itemReq(productID string, qty, price int64) dto.LineItemRequest {
	return dto.LineItemRequest{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(price),
	}
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_NumbersAndTotals() {
	doc, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindSalesOrder, dto.CreateDocumentRequest{
		CustomerID:   "c1",
		CustomerName: "Acme",
		OrderDate:    "2026-03-10",
		Items: []dto.LineItemRequest{
			itemReq("p1", 2, 150),
			itemReq("p2", 1, 700),
		},
	}, "user-1")
	suite.Require().NoError(err)

	suite.Equal("SO-2026-000001", doc.Number)
	suite.Equal(domain.StatusDraft, doc.Status)
	suite.Equal("c1", doc.PartyID)
	suite.Equal("Acme", doc.PartyName)
	suite.True(decimal.NewFromInt(1000).Equal(doc.TotalAmount))
	suite.True(decimal.NewFromInt(300).Equal(doc.Items[0].Total))
	suite.Equal("user-1", doc.CreatedBy)
	suite.NotEmpty(doc.ID)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_SequencePerKindAndYear() {
	first, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindQuotation, dto.CreateDocumentRequest{
		OrderDate: "2025-12-30",
		Items:     []dto.LineItemRequest{itemReq("p1", 1, 100)},
	}, "")
	suite.Require().NoError(err)
	second, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindQuotation, dto.CreateDocumentRequest{
		OrderDate: "2026-01-02",
		Items:     []dto.LineItemRequest{itemReq("p1", 1, 100)},
	}, "")
	suite.Require().NoError(err)

	// The counter is scoped by year, so both get 000001.
	suite.Equal("QT-2025-000001", first.Number)
	suite.Equal("QT-2026-000001", second.Number)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_RejectsEmptyItems() {
	_, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindSalesOrder, dto.CreateDocumentRequest{}, "")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_UnknownKind() {
	_, err := suite.services.Document.CreateDocument(suite.ctx, domain.DocumentKind("memo"), dto.CreateDocumentRequest{
		Items: []dto.LineItemRequest{itemReq("p1", 1, 100)},
	}, "")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_FillsLineFromCatalog() {
	suite.seedProduct("p1", "Widget", 250)

	doc, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindSalesOrder, dto.CreateDocumentRequest{
		Items: []dto.LineItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(3)}},
	}, "")
	suite.Require().NoError(err)

	// Name comes from the catalog and the unit cost backfills the price.
	suite.Equal("Widget", doc.Items[0].ProductName)
	suite.True(decimal.NewFromInt(250).Equal(doc.Items[0].UnitPrice))
	suite.True(decimal.NewFromInt(750).Equal(doc.TotalAmount))
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_UnknownProductLeftAsSubmitted() {
	doc, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindSalesOrder, dto.CreateDocumentRequest{
		Items: []dto.LineItemRequest{{ProductID: "ghost", Quantity: decimal.NewFromInt(2)}},
	}, "")
	suite.Require().NoError(err)
	suite.Empty(doc.Items[0].ProductName)
	suite.True(doc.TotalAmount.IsZero())
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_VendorPartyForPurchases() {
	doc, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindPurchaseOrder, dto.CreateDocumentRequest{
		VendorID:   "v1",
		VendorName: "Supplies Co",
		Items:      []dto.LineItemRequest{itemReq("p1", 1, 100)},
	}, "")
	suite.Require().NoError(err)
	suite.Equal("v1", doc.PartyID)
	suite.Equal("Supplies Co", doc.PartyName)
}

func (suite *DocumentServiceTestSuite) TestCreatePurchaseInvoice_PostsExpenseEntry() {
	doc, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindPurchaseInvoice, dto.CreateDocumentRequest{
		VendorID: "v1",
		Items:    []dto.LineItemRequest{itemReq("p1", 4, 2500)},
	}, "")
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, doc.Status)

	amount := decimal.NewFromInt(10000)
	expense, err := suite.services.Ledger.GetAccountByCode(suite.ctx, domain.AccountPurchaseExpense)
	suite.Require().NoError(err)
	payable, err := suite.services.Ledger.GetAccountByCode(suite.ctx, domain.AccountAccountsPayable)
	suite.Require().NoError(err)
	suite.True(amount.Equal(expense.Balance))
	suite.True(amount.Equal(payable.Balance))

	entries, err := suite.services.Ledger.ListEntries(suite.ctx, dto.ListEntriesParams{DocumentID: doc.ID})
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(domain.AccountPurchaseExpense, entries[0].DebitAccountID)
	suite.Equal(domain.AccountAccountsPayable, entries[0].CreditAccountID)
}

func (suite *DocumentServiceTestSuite) TestCreatePurchaseInvoice_FailedPostingLeavesNoDocument() {
	// A zero amount is unpostable, so the expense entry fails after the
	// invoice record is created.
	_, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindPurchaseInvoice, dto.CreateDocumentRequest{
		VendorID: "v1",
		Items:    []dto.LineItemRequest{itemReq("ghost", 1, 0)},
	}, "")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	// The invoice must not survive without its expense entry, otherwise a
	// retry would double-book the payable.
	count, err := suite.store.Count(suite.ctx, "purchase_invoices", nil)
	suite.Require().NoError(err)
	suite.Zero(count)

	entries, err := suite.services.Ledger.ListEntries(suite.ctx, dto.ListEntriesParams{})
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *DocumentServiceTestSuite) TestGetDocumentByID() {
	created, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindSalesInvoice, dto.CreateDocumentRequest{
		CustomerID: "c1",
		Items:      []dto.LineItemRequest{itemReq("p1", 1, 500)},
	}, "")
	suite.Require().NoError(err)

	got, err := suite.services.Document.GetDocumentByID(suite.ctx, domain.KindSalesInvoice, created.ID)
	suite.Require().NoError(err)
	suite.Equal(created.Number, got.Number)
	suite.Equal(domain.StatusDraft, got.Status)

	_, err = suite.services.Document.GetDocumentByID(suite.ctx, domain.KindSalesInvoice, "missing")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DocumentServiceTestSuite) TestListDocuments_StatusFilterAndLimit() {
	for i := 0; i < 3; i++ {
		_, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindSalesOrder, dto.CreateDocumentRequest{
			Items: []dto.LineItemRequest{itemReq("p1", 1, 100)},
		}, "")
		suite.Require().NoError(err)
	}

	all, err := suite.services.Document.ListDocuments(suite.ctx, domain.KindSalesOrder, dto.ListDocumentsParams{Limit: 50})
	suite.Require().NoError(err)
	suite.Len(all, 3)

	limited, err := suite.services.Document.ListDocuments(suite.ctx, domain.KindSalesOrder, dto.ListDocumentsParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Len(limited, 2)

	none, err := suite.services.Document.ListDocuments(suite.ctx, domain.KindSalesOrder, dto.ListDocumentsParams{Status: "Confirmed", Limit: 50})
	suite.Require().NoError(err)
	suite.Empty(none)

	drafts, err := suite.services.Document.ListDocuments(suite.ctx, domain.KindSalesOrder, dto.ListDocumentsParams{Status: "Draft", Limit: 50})
	suite.Require().NoError(err)
	suite.Len(drafts, 3)
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument() {
	created, err := suite.services.Document.CreateDocument(suite.ctx, domain.KindQuotation, dto.CreateDocumentRequest{
		Items: []dto.LineItemRequest{itemReq("p1", 1, 100)},
	}, "")
	suite.Require().NoError(err)

	err = suite.services.Document.DeleteDocument(suite.ctx, domain.KindQuotation, created.ID)
	suite.Require().NoError(err)

	err = suite.services.Document.DeleteDocument(suite.ctx, domain.KindQuotation, created.ID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
