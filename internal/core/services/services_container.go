package services

import (
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
)

// NewServiceContainer wires every service to the persistence gateway tm.
// The account service consults the same guard that records transactions.
func NewServiceContainer(tm portsrepo.TransactionManager) *portssvc.ServiceContainer {
	guard := NewLedgerGuard(tm)

	return &portssvc.ServiceContainer{
		Account: NewAccountService(tm, WithLedgerRules(guard)),
		Ledger:  guard,
		Export:  NewExportService(tm),
	}
}
