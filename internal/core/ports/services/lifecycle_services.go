package services

import (
	"context"

	"github.com/zonebms/zone_backend/internal/core/domain"
	"github.com/zonebms/zone_backend/internal/dto"
)

// LifecycleSvcFacade defines status transitions and their side effects.
type LifecycleSvcFacade interface {
	// Transition moves a document to target, running the side effects the
	// edge demands (stock moves, ledger postings, date stamping).
	Transition(ctx context.Context, kind domain.DocumentKind, documentID string, target domain.Status, extras dto.TransitionExtras) (*dto.TransitionResult, error)
	// NormalizeStatus applies read-time corrections, such as expiring a
	// quotation whose valid_until has passed.
	NormalizeStatus(ctx context.Context, kind domain.DocumentKind, doc *domain.Document) error
}
