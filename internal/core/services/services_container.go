package services

import (
	portsrepo "github.com/zonebms/zone_backend/internal/core/ports/repositories"
	portssvc "github.com/zonebms/zone_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(store portsrepo.DocumentStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Sequence first since both the ledger and document services number
	// their records through it.
	container.Sequence = NewSequenceService(store)
	container.Ledger = NewLedgerService(store, container.Sequence)
	container.Lifecycle = NewLifecycleService(store, container.Ledger)
	container.Document = NewDocumentService(store, container.Sequence, container.Lifecycle, container.Ledger)

	return container
}
