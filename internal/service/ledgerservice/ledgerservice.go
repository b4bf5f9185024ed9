package ledgerservice

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/securebank/internal/domain"
	"github.com/GlebRadaev/securebank/internal/pg"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

var (
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrAccountNotActive        = errors.New("account is not active")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrWithdrawalLimitExceeded = errors.New("monthly withdrawal limit reached")
	ErrAccountNotFound         = errors.New("account not found")
	ErrBelowMinimumBalance     = errors.New("insufficient initial deposit for account type")
	ErrInvalidStatusTransition = errors.New("invalid account status transition")
	ErrInvalidAccountType      = errors.New("invalid account type")
	ErrInvalidCurrency         = errors.New("invalid currency")
	ErrSameAccount             = errors.New("source and destination accounts are the same")
	ErrNonZeroBalance          = errors.New("account balance must be zero to close")
	ErrBalanceOverflow         = errors.New("amount exceeds the maximum account balance")
)

type AccountRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Account, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Account, error)
	FindAllByOwner(ctx context.Context, owner string) ([]domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateBalance(ctx context.Context, id int, balance int64, withdrawalLimit int) error
	UpdateStatus(ctx context.Context, id int, status domain.AccountStatus) error
	FindDueForReset(ctx context.Context, periodStart time.Time, limit int) ([]int, error)
	ResetWithdrawalLimit(ctx context.Context, id int, limit int, periodStart time.Time) (bool, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	FindByOwner(ctx context.Context, owner string, limit, offset int) ([]domain.Transaction, error)
}

type Options struct {
	// WithdrawalLimit is the number of withdrawals granted per account each month.
	WithdrawalLimit          int
	CloseRequiresZeroBalance bool
}

// TransferResult holds both accounts as they are after the transfer.
type TransferResult struct {
	Reference   string
	Source      domain.Account
	Destination domain.Account
}

type Service struct {
	accountRepo     AccountRepo
	transactionRepo TransactionRepo
	txManager       pg.TXManager
	opts            Options

	now          func() time.Time
	newReference func() string
}

func New(accountRepo AccountRepo, transactionRepo TransactionRepo, txManager pg.TXManager, opts Options) *Service {
	return &Service{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		opts:            opts,
		now:             time.Now,
		newReference:    uuid.NewString,
	}
}

func (s *Service) OpenAccount(ctx context.Context, owner string, accountType domain.AccountType, currency domain.Currency, initialBalance int64) (*domain.Account, error) {
	if !accountType.Valid() {
		return nil, ErrInvalidAccountType
	}
	if !currency.Valid() {
		return nil, ErrInvalidCurrency
	}
	if initialBalance < accountType.MinimumBalance() {
		return nil, ErrBelowMinimumBalance
	}

	account := &domain.Account{
		Owner:           owner,
		Type:            accountType,
		Currency:        currency,
		Balance:         initialBalance,
		Status:          domain.AccountStatusPending,
		WithdrawalLimit: s.opts.WithdrawalLimit,
		LimitResetAt:    domain.AllowancePeriodStart(s.now()),
	}
	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		zap.L().Error("failed to open account", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}

	zap.L().Info("account opened",
		zap.String("owner", owner),
		zap.Int("accountID", created.ID),
		zap.String("type", string(accountType)),
		zap.String("currency", string(currency)),
	)
	return created, nil
}

func (s *Service) ActivateAccount(ctx context.Context, owner string, accountID int) (*domain.Account, error) {
	return s.changeStatus(ctx, owner, accountID, domain.AccountStatusPending, domain.AccountStatusActive)
}

// CloseAccount is terminal: a closed account never changes again.
func (s *Service) CloseAccount(ctx context.Context, owner string, accountID int) (*domain.Account, error) {
	return s.changeStatus(ctx, owner, accountID, domain.AccountStatusActive, domain.AccountStatusClosed)
}

func (s *Service) changeStatus(ctx context.Context, owner string, accountID int, from, to domain.AccountStatus) (*domain.Account, error) {
	var account *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.lockOwned(ctx, owner, accountID)
		if err != nil {
			return err
		}
		if account.Status != from {
			return ErrInvalidStatusTransition
		}
		if to == domain.AccountStatusClosed && s.opts.CloseRequiresZeroBalance && account.Balance != 0 {
			return ErrNonZeroBalance
		}
		if err := s.accountRepo.UpdateStatus(ctx, account.ID, to); err != nil {
			return err
		}
		account.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("account status changed",
		zap.Int("accountID", accountID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return account, nil
}

func (s *Service) Deposit(ctx context.Context, owner string, accountID int, amount int64) (*domain.Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var account *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.lockOwned(ctx, owner, accountID)
		if err != nil {
			return err
		}
		if err := checkDeposit(account, amount); err != nil {
			return err
		}
		return s.credit(ctx, account, amount, "")
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("deposit completed", zap.Int("accountID", accountID), zap.Int64("amount", amount))
	return account, nil
}

func (s *Service) Withdraw(ctx context.Context, owner string, accountID int, amount int64) (*domain.Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var account *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.lockOwned(ctx, owner, accountID)
		if err != nil {
			return err
		}
		if err := checkWithdrawal(account, amount); err != nil {
			return err
		}
		return s.debit(ctx, account, amount, "")
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("withdrawal completed",
		zap.Int("accountID", accountID),
		zap.Int64("amount", amount),
		zap.Int("withdrawalsLeft", account.WithdrawalLimit),
	)
	return account, nil
}

// Transfer moves amount between two accounts in one database transaction. Both rows are locked
// in ascending id order so that concurrent transfers in opposite directions cannot deadlock.
func (s *Service) Transfer(ctx context.Context, owner string, sourceID, destinationID int, amount int64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if sourceID == destinationID {
		return nil, ErrSameAccount
	}

	reference := s.newReference()
	var source, destination *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		locked := make(map[int]*domain.Account, 2)
		for _, id := range []int{min(sourceID, destinationID), max(sourceID, destinationID)} {
			account, err := s.accountRepo.FindByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			locked[id] = account
		}
		source, destination = locked[sourceID], locked[destinationID]

		if destination == nil {
			return ErrAccountNotFound
		}
		if source == nil || source.Owner != owner {
			return ErrAccountNotFound
		}
		if err := checkWithdrawal(source, amount); err != nil {
			return err
		}
		if err := checkDeposit(destination, amount); err != nil {
			return err
		}

		if err := s.debit(ctx, source, amount, reference); err != nil {
			return err
		}
		return s.credit(ctx, destination, amount, reference)
	})
	if err != nil {
		zap.L().Warn("transfer failed",
			zap.Int("sourceID", sourceID),
			zap.Int("destinationID", destinationID),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return nil, err
	}

	zap.L().Info("transfer completed",
		zap.String("reference", reference),
		zap.Int("sourceID", sourceID),
		zap.Int("destinationID", destinationID),
		zap.Int64("amount", amount),
	)
	return &TransferResult{
		Reference:   reference,
		Source:      *source,
		Destination: *destination,
	}, nil
}

func (s *Service) GetAccounts(ctx context.Context, owner string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAllByOwner(ctx, owner)
	if err != nil {
		zap.L().Error("failed to get accounts", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}
	return accounts, nil
}

func (s *Service) GetAccount(ctx context.Context, owner string, accountID int) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		zap.L().Error("failed to get account", zap.Int("accountID", accountID), zap.Error(err))
		return nil, err
	}
	if account == nil || account.Owner != owner {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// GetTransactions returns the owner's history newest first.
func (s *Service) GetTransactions(ctx context.Context, owner string, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	transactions, err := s.transactionRepo.FindByOwner(ctx, owner, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

func (s *Service) lockOwned(ctx context.Context, owner string, accountID int) (*domain.Account, error) {
	account, err := s.accountRepo.FindByIDForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.Owner != owner {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func checkWithdrawal(account *domain.Account, amount int64) error {
	if !account.IsActive() {
		return ErrAccountNotActive
	}
	if amount > account.Balance {
		return ErrInsufficientFunds
	}
	if account.WithdrawalLimit <= 0 {
		return ErrWithdrawalLimitExceeded
	}
	return nil
}

func checkDeposit(account *domain.Account, amount int64) error {
	if !account.IsActive() {
		return ErrAccountNotActive
	}
	if amount > math.MaxInt64-account.Balance {
		return ErrBalanceOverflow
	}
	return nil
}

func (s *Service) credit(ctx context.Context, account *domain.Account, amount int64, reference string) error {
	balance := account.Balance + amount
	if err := s.accountRepo.UpdateBalance(ctx, account.ID, balance, account.WithdrawalLimit); err != nil {
		return err
	}
	account.Balance = balance
	return s.record(ctx, account, domain.TransactionTypeDeposit, amount, reference)
}

func (s *Service) debit(ctx context.Context, account *domain.Account, amount int64, reference string) error {
	balance := account.Balance - amount
	limit := account.WithdrawalLimit - 1
	if err := s.accountRepo.UpdateBalance(ctx, account.ID, balance, limit); err != nil {
		return err
	}
	account.Balance = balance
	account.WithdrawalLimit = limit
	return s.record(ctx, account, domain.TransactionTypeWithdrawal, amount, reference)
}

func (s *Service) record(ctx context.Context, account *domain.Account, txType domain.TransactionType, amount int64, reference string) error {
	_, err := s.transactionRepo.Create(ctx, &domain.Transaction{
		AccountID: account.ID,
		Owner:     account.Owner,
		Type:      txType,
		Amount:    amount,
		Reference: reference,
	})
	return err
}
