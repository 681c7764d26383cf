package repositories

import (
	"context"
)

// UnitOfWork is the scoped-acquisition contract of the persistence gateway.
// fn runs with sole access to the store and with repositories bound to a
// single storage transaction; it is committed when fn returns nil and rolled
// back otherwise. Access is released on every exit path.
type UnitOfWork func(ctx context.Context, repos RepositoryProvider) error

// TransactionManager defines methods for exclusive, transactional access
type TransactionManager interface {
	WithExclusiveAccess(ctx context.Context, fn UnitOfWork) error
}
