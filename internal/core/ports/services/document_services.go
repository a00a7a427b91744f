package services

import (
	"context"

	"github.com/zonebms/zone_backend/internal/core/domain"
	"github.com/zonebms/zone_backend/internal/dto"
)

// DocumentSvcFacade defines document CRUD for every document kind.
type DocumentSvcFacade interface {
	CreateDocument(ctx context.Context, kind domain.DocumentKind, req dto.CreateDocumentRequest, creatorID string) (*domain.Document, error)
	GetDocumentByID(ctx context.Context, kind domain.DocumentKind, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, kind domain.DocumentKind, params dto.ListDocumentsParams) ([]domain.Document, error)
	DeleteDocument(ctx context.Context, kind domain.DocumentKind, documentID string) error
}
