package services

// ServiceContainer holds every service facade the handlers depend on.
type ServiceContainer struct {
	Document  DocumentSvcFacade
	Lifecycle LifecycleSvcFacade
	Ledger    LedgerSvcFacade
	Sequence  SequenceSvcFacade
}
