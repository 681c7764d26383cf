package sqlite

import (
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
)

func newRepositoryProvider(q Querier) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newSQLiteAccountRepository(q),
		TransactionRepo: newSQLiteTransactionRepository(q),
	}
}
