package services

// ServiceContainer holds instances of all the application services.
// Handlers and CLI commands receive it instead of individual services.
type ServiceContainer struct {
	Account AccountSvcFacade
	Ledger  LedgerGuardSvcFacade
	Export  LedgerExportSvc
}
