package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/zonebms/zone_backend/internal/apperrors"
	"github.com/zonebms/zone_backend/internal/core/domain"
	portsrepo "github.com/zonebms/zone_backend/internal/core/ports/repositories"
	"github.com/zonebms/zone_backend/internal/utils/mapping"
)

// ReserveStock computes the stock level after reserving quantity from current.
// It fails with ErrInsufficientStock when the reservation would go negative,
// naming the product and the shortfall.
func ReserveStock(productID string, current, quantity decimal.Decimal) (decimal.Decimal, error) {
	if current.LessThan(quantity) {
		shortfall := quantity.Sub(current)
		return decimal.Zero, fmt.Errorf("%w: product %s is short by %s", apperrors.ErrInsufficientStock, productID, shortfall)
	}
	return current.Sub(quantity), nil
}

// RestoreStock computes the stock level after releasing or receiving quantity.
func RestoreStock(current, quantity decimal.Decimal) decimal.Decimal {
	return current.Add(quantity)
}

// stockManager applies line-item stock movements through the document store.
// Reservations are compare-and-swap writes so two concurrent confirmations
// cannot both spend the same units.
type stockManager struct {
	BaseService
	store portsrepo.DocumentStore
}

func newStockManager(store portsrepo.DocumentStore) *stockManager {
	return &stockManager{store: store}
}

// Reserve decrements stock for every line item, all or nothing. If any line
// fails, the already reserved lines are released before the error is returned.
func (m *stockManager) Reserve(ctx context.Context, items []domain.LineItem) error {
	reserved := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		if err := m.reserveOne(ctx, item.ProductID, item.Quantity); err != nil {
			for _, done := range reserved {
				if releaseErr := m.adjust(ctx, done.ProductID, done.Quantity); releaseErr != nil {
					m.LogError(ctx, releaseErr, "Failed to release stock while unwinding reservation",
						slog.String("product_id", done.ProductID))
					err = fmt.Errorf("%w; stock for product %s left reserved: %v", err, done.ProductID, releaseErr)
				}
			}
			return err
		}
		reserved = append(reserved, item)
	}
	return nil
}

// Release returns reserved stock for every line item.
func (m *stockManager) Release(ctx context.Context, items []domain.LineItem) error {
	for _, item := range items {
		if err := m.adjust(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Deduct removes stock for every line item without the non-negative guard.
// Only used to unwind a release or receipt whose transition did not commit.
func (m *stockManager) Deduct(ctx context.Context, items []domain.LineItem) error {
	for _, item := range items {
		if err := m.adjust(ctx, item.ProductID, item.Quantity.Neg()); err != nil {
			return err
		}
	}
	return nil
}

// Receive increments stock for every line item. A product missing from the
// catalog is created from the line, since purchasing may introduce new items.
func (m *stockManager) Receive(ctx context.Context, items []domain.LineItem) error {
	for _, item := range items {
		err := m.adjust(ctx, item.ProductID, item.Quantity)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if err := m.createFromLine(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (m *stockManager) reserveOne(ctx context.Context, productID string, quantity decimal.Decimal) error {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		record, err := m.store.Get(ctx, domain.ProductCollection, productID)
		if err != nil {
			return err
		}
		current := mapping.Decimal(record, "stock")
		next, err := ReserveStock(productID, current, quantity)
		if err != nil {
			return err
		}
		cond := portsrepo.Condition{Field: "stock", Op: portsrepo.CondEq, Value: current}
		_, err = m.store.UpdateWhere(ctx, domain.ProductCollection, productID, cond, portsrepo.Record{"stock": next})
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		// Lost the race, re-read and retry against the fresh stock level.
	}
	return fmt.Errorf("%w: could not reserve stock for product %s", apperrors.ErrConflict, productID)
}

func (m *stockManager) adjust(ctx context.Context, productID string, quantity decimal.Decimal) error {
	_, err := m.store.Increment(ctx, domain.ProductCollection, productID, "stock", quantity)
	return err
}

func (m *stockManager) createFromLine(ctx context.Context, item domain.LineItem) error {
	product := domain.Product{
		ProductID: item.ProductID,
		Name:      item.ProductName,
		Cost:      item.UnitPrice,
		Price:     item.UnitPrice.Mul(domain.ReceivedPriceMarkup),
		Stock:     item.Quantity,
	}
	fields := mapping.ToRecordProduct(product)
	fields["id"] = item.ProductID
	_, err := m.store.Create(ctx, domain.ProductCollection, fields)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Another receipt created it first, fold this quantity in.
		return m.adjust(ctx, item.ProductID, item.Quantity)
	}
	if err != nil {
		return err
	}
	m.LogInfo(ctx, "Auto-created product from purchase receipt",
		slog.String("product_id", item.ProductID),
		slog.String("quantity", item.Quantity.String()))
	return nil
}
