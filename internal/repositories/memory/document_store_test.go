package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/zonebms/zone_backend/internal/apperrors"
	portsrepo "github.com/zonebms/zone_backend/internal/core/ports/repositories"
	"github.com/zonebms/zone_backend/internal/repositories/memory"
)

type DocumentStoreTestSuite struct {
	suite.Suite
	store *memory.DocumentStore
	ctx   context.Context
}

func (suite *DocumentStoreTestSuite) SetupTest() {
	suite.store = memory.NewDocumentStore()
	suite.ctx = context.Background()
}

func (suite *DocumentStoreTestSuite) TestCreate_AssignsIDAndTimestamps() {
	record, err := suite.store.Create(suite.ctx, "widgets", portsrepo.Record{"name": "bolt"})

	suite.Require().NoError(err)
	suite.NotEmpty(record["id"])
	suite.NotNil(record["created_at"])
	suite.NotNil(record["updated_at"])
	suite.Equal("bolt", record["name"])
}

func (suite *DocumentStoreTestSuite) TestCreate_ExplicitIDCollision() {
	_, err := suite.store.Create(suite.ctx, "widgets", portsrepo.Record{"id": "w1"})
	suite.Require().NoError(err)

	_, err = suite.store.Create(suite.ctx, "widgets", portsrepo.Record{"id": "w1"})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *DocumentStoreTestSuite) TestGet_NotFound() {
	_, err := suite.store.Get(suite.ctx, "widgets", "missing")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DocumentStoreTestSuite) TestGet_ReturnsACopy() {
	created, err := suite.store.Create(suite.ctx, "widgets", portsrepo.Record{"tags": []any{"a"}})
	suite.Require().NoError(err)
	id := created["id"].(string)

	first, err := suite.store.Get(suite.ctx, "widgets", id)
	suite.Require().NoError(err)
	first["tags"].([]any)[0] = "mutated"

	second, err := suite.store.Get(suite.ctx, "widgets", id)
	suite.Require().NoError(err)
	suite.Equal("a", second["tags"].([]any)[0])
}

func (suite *DocumentStoreTestSuite) TestList_FilterAndLimit() {
	for _, status := range []string{"Draft", "Draft", "Confirmed"} {
		_, err := suite.store.Create(suite.ctx, "orders", portsrepo.Record{"status": status})
		suite.Require().NoError(err)
	}

	drafts, err := suite.store.List(suite.ctx, "orders", portsrepo.Filter{"status": "Draft"}, nil, 0)
	suite.Require().NoError(err)
	suite.Len(drafts, 2)

	limited, err := suite.store.List(suite.ctx, "orders", nil, nil, 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)
}

func (suite *DocumentStoreTestSuite) TestList_SortsByField() {
	for _, number := range []string{"SO-2026-000002", "SO-2026-000001", "SO-2026-000003"} {
		_, err := suite.store.Create(suite.ctx, "orders", portsrepo.Record{"order_number": number})
		suite.Require().NoError(err)
	}

	records, err := suite.store.List(suite.ctx, "orders", nil, &portsrepo.Sort{Field: "order_number", Desc: true}, 0)
	suite.Require().NoError(err)
	suite.Require().Len(records, 3)
	suite.Equal("SO-2026-000003", records[0]["order_number"])
	suite.Equal("SO-2026-000001", records[2]["order_number"])
}

func (suite *DocumentStoreTestSuite) TestUpdate_MergesFields() {
	created, err := suite.store.Create(suite.ctx, "widgets", portsrepo.Record{"name": "bolt", "size": "M3"})
	suite.Require().NoError(err)
	id := created["id"].(string)

	updated, err := suite.store.Update(suite.ctx, "widgets", id, portsrepo.Record{"size": "M4"})
	suite.Require().NoError(err)
	suite.Equal("bolt", updated["name"])
	suite.Equal("M4", updated["size"])
}

func (suite *DocumentStoreTestSuite) TestUpdateWhere_ConditionHolds() {
	created, err := suite.store.Create(suite.ctx, "products", portsrepo.Record{"stock": decimal.NewFromInt(5)})
	suite.Require().NoError(err)
	id := created["id"].(string)

	cond := portsrepo.Condition{Field: "stock", Op: portsrepo.CondEq, Value: decimal.NewFromInt(5)}
	updated, err := suite.store.UpdateWhere(suite.ctx, "products", id, cond, portsrepo.Record{"stock": decimal.NewFromInt(2)})
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(2).Equal(updated["stock"].(decimal.Decimal)))
}

func (suite *DocumentStoreTestSuite) TestUpdateWhere_ConditionFails() {
	created, err := suite.store.Create(suite.ctx, "products", portsrepo.Record{"stock": decimal.NewFromInt(5)})
	suite.Require().NoError(err)
	id := created["id"].(string)

	cond := portsrepo.Condition{Field: "stock", Op: portsrepo.CondEq, Value: decimal.NewFromInt(4)}
	_, err = suite.store.UpdateWhere(suite.ctx, "products", id, cond, portsrepo.Record{"stock": decimal.NewFromInt(1)})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)

	record, err := suite.store.Get(suite.ctx, "products", id)
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(5).Equal(record["stock"].(decimal.Decimal)))
}

func (suite *DocumentStoreTestSuite) TestUpdateWhere_GTE() {
	created, err := suite.store.Create(suite.ctx, "products", portsrepo.Record{"stock": decimal.NewFromInt(5)})
	suite.Require().NoError(err)
	id := created["id"].(string)

	cond := portsrepo.Condition{Field: "stock", Op: portsrepo.CondGTE, Value: decimal.NewFromInt(3)}
	_, err = suite.store.UpdateWhere(suite.ctx, "products", id, cond, portsrepo.Record{"stock": decimal.NewFromInt(2)})
	suite.Require().NoError(err)

	cond = portsrepo.Condition{Field: "stock", Op: portsrepo.CondGTE, Value: decimal.NewFromInt(3)}
	_, err = suite.store.UpdateWhere(suite.ctx, "products", id, cond, portsrepo.Record{"stock": decimal.Zero})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *DocumentStoreTestSuite) TestIncrement_AddsDelta() {
	created, err := suite.store.Create(suite.ctx, "accounts", portsrepo.Record{"balance": decimal.NewFromInt(100)})
	suite.Require().NoError(err)
	id := created["id"].(string)

	updated, err := suite.store.Increment(suite.ctx, "accounts", id, "balance", decimal.NewFromInt(-30))
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(70).Equal(updated["balance"].(decimal.Decimal)))
}

func (suite *DocumentStoreTestSuite) TestIncrement_MissingFieldStartsAtZero() {
	created, err := suite.store.Create(suite.ctx, "customers", portsrepo.Record{"name": "Acme"})
	suite.Require().NoError(err)
	id := created["id"].(string)

	updated, err := suite.store.Increment(suite.ctx, "customers", id, "total_purchases", decimal.NewFromInt(500))
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(500).Equal(updated["total_purchases"].(decimal.Decimal)))
}

func (suite *DocumentStoreTestSuite) TestDelete() {
	created, err := suite.store.Create(suite.ctx, "widgets", portsrepo.Record{})
	suite.Require().NoError(err)
	id := created["id"].(string)

	deleted, err := suite.store.Delete(suite.ctx, "widgets", id)
	suite.Require().NoError(err)
	suite.True(deleted)

	deleted, err = suite.store.Delete(suite.ctx, "widgets", id)
	suite.Require().NoError(err)
	suite.False(deleted)
}

func (suite *DocumentStoreTestSuite) TestCountAndFindOne() {
	for i := 0; i < 3; i++ {
		_, err := suite.store.Create(suite.ctx, "counters", portsrepo.Record{"prefix": "SO", "year": 2026, "seq": i})
		suite.Require().NoError(err)
	}

	count, err := suite.store.Count(suite.ctx, "counters", portsrepo.Filter{"prefix": "SO"})
	suite.Require().NoError(err)
	suite.EqualValues(3, count)

	found, err := suite.store.FindOne(suite.ctx, "counters", portsrepo.Filter{"prefix": "SO", "year": 2026})
	suite.Require().NoError(err)
	suite.Equal("SO", found["prefix"])

	_, err = suite.store.FindOne(suite.ctx, "counters", portsrepo.Filter{"prefix": "PO"})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestDocumentStoreTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentStoreTestSuite))
}
