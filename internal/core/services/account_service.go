package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
)

// defaultChart is the starter chart of accounts created by SeedDefaultChart.
var defaultChart = []struct {
	Name string
	Type domain.AccountType
}{
	{"Cash", domain.Asset},
	{"Accounts Receivable", domain.Asset},
	{"Accounts Payable", domain.Liability},
	{"Owner's Equity", domain.Equity},
	{"Revenue", domain.Income},
	{"Rent Expense", domain.Expense},
}

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	tm    portsrepo.TransactionManager
	guard portssvc.LedgerRuleChecker
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithLedgerRules replaces the rule checker consulted on account mutations.
func WithLedgerRules(guard portssvc.LedgerRuleChecker) AccountServiceOption {
	return func(s *accountService) {
		s.guard = guard
	}
}

// NewAccountService creates the chart-of-accounts manager. Unless overridden
// with WithLedgerRules it consults a LedgerGuard bound to the same gateway.
func NewAccountService(tm portsrepo.TransactionManager, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{tm: tm}
	for _, option := range options {
		option(svc)
	}
	if svc.guard == nil {
		svc.guard = NewLedgerGuard(tm)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account with a zero balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (int64, error) {
	accountType, err := domain.ParseAccountType(req.AccountType)
	if err != nil {
		s.logOutcome(ctx, err, "Rejected account creation", slog.String("account_type", req.AccountType))
		return 0, err
	}

	account := domain.NewAccount(req.Name, accountType, req.ParentID)
	if err := account.Validate(); err != nil {
		s.logOutcome(ctx, err, "Rejected account creation", slog.String("name", req.Name))
		return 0, err
	}

	var id int64
	err = s.tm.WithExclusiveAccess(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if err := checkParentExists(ctx, repos, account.ParentID); err != nil {
			return err
		}
		if err := checkNameFree(ctx, repos, account.Name, 0); err != nil {
			return err
		}
		var err error
		id, err = repos.AccountRepo.SaveAccount(ctx, account)
		return err
	})
	if err != nil {
		s.logOutcome(ctx, err, "Failed to create account", slog.String("name", account.Name))
		return 0, err
	}

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", id), slog.String("name", account.Name))
	return id, nil
}

// GetAccountByID returns a single account or apperrors.ErrNotFound.
func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	var account *domain.Account
	err := s.tm.WithExclusiveAccess(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		var err error
		account, err = repos.AccountRepo.FindAccountByID(ctx, accountID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts returns every account as of the moment access was acquired.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := s.tm.WithExclusiveAccess(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		var err error
		accounts, err = repos.AccountRepo.ListAccounts(ctx)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}

	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}

// UpdateAccount replaces the editable fields of an account. An unknown id is
// not an error; it reports zero rows affected without running the other checks.
func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (int64, error) {
	accountType, err := domain.ParseAccountType(req.AccountType)
	if err != nil {
		s.logOutcome(ctx, err, "Rejected account update", slog.Int64("account_id", accountID))
		return 0, err
	}

	account := domain.NewAccount(req.Name, accountType, req.ParentID)
	account.ID = accountID
	account.IsActive = req.Active()

	var rows int64
	err = s.tm.WithExclusiveAccess(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		exists, err := repos.AccountRepo.AccountExists(ctx, accountID)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
		// History wins over every other rejection.
		if err := s.guard.CheckDeactivation(ctx, repos, accountID, account.IsActive); err != nil {
			return err
		}
		if err := account.Validate(); err != nil {
			return err
		}
		if err := checkParentExists(ctx, repos, account.ParentID); err != nil {
			return err
		}
		if account.ParentID != nil {
			if err := checkNoCycle(ctx, repos, accountID, *account.ParentID); err != nil {
				return err
			}
		}
		if err := checkNameFree(ctx, repos, account.Name, accountID); err != nil {
			return err
		}
		rows, err = repos.AccountRepo.UpdateAccount(ctx, account)
		return err
	})
	if err != nil {
		s.logOutcome(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		return 0, err
	}

	s.LogInfo(ctx, "Account updated", slog.Int64("account_id", accountID), slog.Int64("rows_affected", rows))
	return rows, nil
}

// SeedDefaultChart creates the starter chart of accounts in one unit of work,
// skipping names that already exist. It returns how many accounts were created.
func (s *accountService) SeedDefaultChart(ctx context.Context) (int, error) {
	created := 0
	err := s.tm.WithExclusiveAccess(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		created = 0
		for _, entry := range defaultChart {
			taken, err := repos.AccountRepo.AccountNameExists(ctx, entry.Name, 0)
			if err != nil {
				return err
			}
			if taken {
				continue
			}
			if _, err := repos.AccountRepo.SaveAccount(ctx, domain.NewAccount(entry.Name, entry.Type, nil)); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to seed default chart of accounts")
		return 0, err
	}

	s.LogInfo(ctx, "Default chart of accounts seeded", slog.Int("created", created))
	return created, nil
}

func checkParentExists(ctx context.Context, repos portsrepo.RepositoryProvider, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	exists, err := repos.AccountRepo.AccountExists(ctx, *parentID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrParentNotFound
	}
	return nil
}

func checkNameFree(ctx context.Context, repos portsrepo.RepositoryProvider, name string, excludeID int64) error {
	taken, err := repos.AccountRepo.AccountNameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrDuplicateName
	}
	return nil
}

// checkNoCycle walks the ancestors of parentID and fails if accountID is among them.
func checkNoCycle(ctx context.Context, repos portsrepo.RepositoryProvider, accountID, parentID int64) error {
	seen := make(map[int64]struct{})
	for cur := &parentID; cur != nil; {
		if *cur == accountID {
			return apperrors.ErrParentCycle
		}
		if _, ok := seen[*cur]; ok {
			return nil
		}
		seen[*cur] = struct{}{}

		next, err := repos.AccountRepo.FindParentID(ctx, *cur)
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}
