package ledgerservice

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/GlebRadaev/securebank/internal/domain"
	"github.com/GlebRadaev/securebank/internal/pg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, time.May, 17, 12, 0, 0, 0, time.UTC)

func NewMock(t *testing.T, opts Options) (*Service, *MockAccountRepo, *MockTransactionRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	accountRepo := NewMockAccountRepo(ctrl)
	transactionRepo := NewMockTransactionRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)

	service := New(accountRepo, transactionRepo, txManager, opts)
	service.now = func() time.Time { return fixedNow }
	service.newReference = func() string { return "7d0e3b4c-2f4a-4d35-9a8e-3e6f1c2b9a10" }
	defer ctrl.Finish()
	return service, accountRepo, transactionRepo, txManager
}

func expectTx(txManager *pg.MockTXManager) *gomock.Call {
	return txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		})
}

func account(id int, owner string, status domain.AccountStatus, balance int64, limit int) *domain.Account {
	return &domain.Account{
		ID:              id,
		Owner:           owner,
		Type:            domain.AccountTypeBasic,
		Currency:        domain.CurrencyDollar,
		Balance:         balance,
		Status:          status,
		WithdrawalLimit: limit,
	}
}

func TestOpenAccount(t *testing.T) {
	service, accountRepo, _, _ := NewMock(t, Options{WithdrawalLimit: 5})
	periodStart := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		accountType    domain.AccountType
		currency       domain.Currency
		initialBalance int64
		prepareMock    func()
		expectedError  error
	}{
		{
			name:           "Unknown account type",
			accountType:    domain.AccountType("premium"),
			currency:       domain.CurrencyDollar,
			initialBalance: 100,
			prepareMock:    func() {},
			expectedError:  ErrInvalidAccountType,
		},
		{
			name:           "Unknown currency",
			accountType:    domain.AccountTypeBasic,
			currency:       domain.Currency("BTC"),
			initialBalance: 100,
			prepareMock:    func() {},
			expectedError:  ErrInvalidCurrency,
		},
		{
			name:           "Saving below minimum",
			accountType:    domain.AccountTypeSaving,
			currency:       domain.CurrencyEuro,
			initialBalance: 499,
			prepareMock:    func() {},
			expectedError:  ErrBelowMinimumBalance,
		},
		{
			name:           "Basic with negative deposit",
			accountType:    domain.AccountTypeBasic,
			currency:       domain.CurrencyEuro,
			initialBalance: -1,
			prepareMock:    func() {},
			expectedError:  ErrBelowMinimumBalance,
		},
		{
			name:           "Saving at minimum opens pending",
			accountType:    domain.AccountTypeSaving,
			currency:       domain.CurrencyYen,
			initialBalance: 500,
			prepareMock: func() {
				accountRepo.EXPECT().Create(gomock.Any(), &domain.Account{
					Owner:           "alice",
					Type:            domain.AccountTypeSaving,
					Currency:        domain.CurrencyYen,
					Balance:         500,
					Status:          domain.AccountStatusPending,
					WithdrawalLimit: 5,
					LimitResetAt:    periodStart,
				}).DoAndReturn(func(ctx context.Context, a *domain.Account) (*domain.Account, error) {
					a.ID = 1
					return a, nil
				})
			},
		},
		{
			name:           "Basic with zero deposit opens pending",
			accountType:    domain.AccountTypeBasic,
			currency:       domain.CurrencyPound,
			initialBalance: 0,
			prepareMock: func() {
				accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, a *domain.Account) (*domain.Account, error) {
						a.ID = 2
						return a, nil
					})
			},
		},
		{
			name:           "Store failure",
			accountType:    domain.AccountTypeBasic,
			currency:       domain.CurrencyDollar,
			initialBalance: 10,
			prepareMock: func() {
				accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			result, err := service.OpenAccount(context.Background(), "alice", tt.accountType, tt.currency, tt.initialBalance)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.AccountStatusPending, result.Status)
			assert.Equal(t, tt.initialBalance, result.Balance)
			assert.Equal(t, 5, result.WithdrawalLimit)
			assert.Equal(t, periodStart, result.LimitResetAt)
		})
	}
}

func TestChangeStatus(t *testing.T) {
	tests := []struct {
		name           string
		opts           Options
		stored         *domain.Account
		activate       bool
		expectUpdate   domain.AccountStatus
		expectedStatus domain.AccountStatus
		expectedError  error
	}{
		{
			name:           "Activate pending account",
			stored:         account(1, "alice", domain.AccountStatusPending, 100, 5),
			activate:       true,
			expectUpdate:   domain.AccountStatusActive,
			expectedStatus: domain.AccountStatusActive,
		},
		{
			name:          "Activate active account",
			stored:        account(1, "alice", domain.AccountStatusActive, 100, 5),
			activate:      true,
			expectedError: ErrInvalidStatusTransition,
		},
		{
			name:          "Activate closed account",
			stored:        account(1, "alice", domain.AccountStatusClosed, 0, 5),
			activate:      true,
			expectedError: ErrInvalidStatusTransition,
		},
		{
			name:           "Close active account",
			stored:         account(1, "alice", domain.AccountStatusActive, 100, 5),
			expectUpdate:   domain.AccountStatusClosed,
			expectedStatus: domain.AccountStatusClosed,
		},
		{
			name:          "Close pending account",
			stored:        account(1, "alice", domain.AccountStatusPending, 100, 5),
			expectedError: ErrInvalidStatusTransition,
		},
		{
			name:          "Close closed account",
			stored:        account(1, "alice", domain.AccountStatusClosed, 0, 5),
			expectedError: ErrInvalidStatusTransition,
		},
		{
			name:          "Close with money when zero balance is required",
			opts:          Options{CloseRequiresZeroBalance: true},
			stored:        account(1, "alice", domain.AccountStatusActive, 100, 5),
			expectedError: ErrNonZeroBalance,
		},
		{
			name:           "Close empty account when zero balance is required",
			opts:           Options{CloseRequiresZeroBalance: true},
			stored:         account(1, "alice", domain.AccountStatusActive, 0, 5),
			expectUpdate:   domain.AccountStatusClosed,
			expectedStatus: domain.AccountStatusClosed,
		},
		{
			name:          "Account of another user",
			stored:        account(1, "bob", domain.AccountStatusPending, 100, 5),
			activate:      true,
			expectedError: ErrAccountNotFound,
		},
		{
			name:          "Missing account",
			stored:        nil,
			activate:      true,
			expectedError: ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, _, txManager := NewMock(t, tt.opts)
			expectTx(txManager)
			accountRepo.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(tt.stored, nil)
			if tt.expectUpdate != "" {
				accountRepo.EXPECT().UpdateStatus(gomock.Any(), 1, tt.expectUpdate).Return(nil)
			}

			var (
				result *domain.Account
				err    error
			)
			if tt.activate {
				result, err = service.ActivateAccount(context.Background(), "alice", 1)
			} else {
				result, err = service.CloseAccount(context.Background(), "alice", 1)
			}

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, result.Status)
		})
	}
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		name          string
		amount        int64
		prepareMock   func(*MockAccountRepo, *MockTransactionRepo, *pg.MockTXManager)
		expectedError error
		balance       int64
	}{
		{
			name:          "Zero amount",
			amount:        0,
			prepareMock:   func(*MockAccountRepo, *MockTransactionRepo, *pg.MockTXManager) {},
			expectedError: ErrInvalidAmount,
		},
		{
			name:          "Negative amount",
			amount:        -5,
			prepareMock:   func(*MockAccountRepo, *MockTransactionRepo, *pg.MockTXManager) {},
			expectedError: ErrInvalidAmount,
		},
		{
			name:   "Pending account",
			amount: 50,
			prepareMock: func(a *MockAccountRepo, _ *MockTransactionRepo, tx *pg.MockTXManager) {
				expectTx(tx)
				a.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(account(1, "alice", domain.AccountStatusPending, 100, 5), nil)
			},
			expectedError: ErrAccountNotActive,
		},
		{
			name:   "Balance would overflow",
			amount: math.MaxInt64,
			prepareMock: func(a *MockAccountRepo, _ *MockTransactionRepo, tx *pg.MockTXManager) {
				expectTx(tx)
				a.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(account(1, "alice", domain.AccountStatusActive, 100, 5), nil)
			},
			expectedError: ErrBalanceOverflow,
		},
		{
			name:   "Deposit up to the maximum balance",
			amount: math.MaxInt64 - 100,
			prepareMock: func(a *MockAccountRepo, tr *MockTransactionRepo, tx *pg.MockTXManager) {
				expectTx(tx)
				a.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(account(1, "alice", domain.AccountStatusActive, 100, 5), nil)
				a.EXPECT().UpdateBalance(gomock.Any(), 1, int64(math.MaxInt64), 5).Return(nil)
				tr.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Transaction{ID: 1}, nil)
			},
			balance: math.MaxInt64,
		},
		{
			name:   "Successful deposit",
			amount: 50,
			prepareMock: func(a *MockAccountRepo, tr *MockTransactionRepo, tx *pg.MockTXManager) {
				expectTx(tx)
				a.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(account(1, "alice", domain.AccountStatusActive, 100, 5), nil)
				a.EXPECT().UpdateBalance(gomock.Any(), 1, int64(150), 5).Return(nil)
				tr.EXPECT().Create(gomock.Any(), &domain.Transaction{
					AccountID: 1,
					Owner:     "alice",
					Type:      domain.TransactionTypeDeposit,
					Amount:    50,
				}).Return(&domain.Transaction{ID: 1}, nil)
			},
			balance: 150,
		},
		{
			name:   "Record failure",
			amount: 50,
			prepareMock: func(a *MockAccountRepo, tr *MockTransactionRepo, tx *pg.MockTXManager) {
				expectTx(tx)
				a.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(account(1, "alice", domain.AccountStatusActive, 100, 5), nil)
				a.EXPECT().UpdateBalance(gomock.Any(), 1, int64(150), 5).Return(nil)
				tr.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, transactionRepo, txManager := NewMock(t, Options{WithdrawalLimit: 5})
			tt.prepareMock(accountRepo, transactionRepo, txManager)

			result, err := service.Deposit(context.Background(), "alice", 1, tt.amount)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.balance, result.Balance)
		})
	}
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name          string
		amount        int64
		stored        *domain.Account
		expectedError error
		balance       int64
		limit         int
	}{
		{
			name:          "Zero amount",
			amount:        0,
			expectedError: ErrInvalidAmount,
		},
		{
			name:          "Inactive account is reported before funds",
			amount:        500,
			stored:        account(1, "alice", domain.AccountStatusClosed, 100, 0),
			expectedError: ErrAccountNotActive,
		},
		{
			name:          "Insufficient funds is reported before the limit",
			amount:        500,
			stored:        account(1, "alice", domain.AccountStatusActive, 100, 0),
			expectedError: ErrInsufficientFunds,
		},
		{
			name:          "Limit exhausted regardless of funds",
			amount:        10,
			stored:        account(1, "alice", domain.AccountStatusActive, 1000, 0),
			expectedError: ErrWithdrawalLimitExceeded,
		},
		{
			name:    "Withdraw the whole balance",
			amount:  150,
			stored:  account(1, "alice", domain.AccountStatusActive, 150, 5),
			balance: 0,
			limit:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, transactionRepo, txManager := NewMock(t, Options{WithdrawalLimit: 5})
			if tt.stored != nil {
				expectTx(txManager)
				accountRepo.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(tt.stored, nil)
			}
			if tt.expectedError == nil {
				accountRepo.EXPECT().UpdateBalance(gomock.Any(), 1, tt.balance, tt.limit).Return(nil)
				transactionRepo.EXPECT().Create(gomock.Any(), &domain.Transaction{
					AccountID: 1,
					Owner:     "alice",
					Type:      domain.TransactionTypeWithdrawal,
					Amount:    tt.amount,
				}).Return(&domain.Transaction{ID: 1}, nil)
			}

			result, err := service.Withdraw(context.Background(), "alice", 1, tt.amount)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.balance, result.Balance)
			assert.Equal(t, tt.limit, result.WithdrawalLimit)
		})
	}
}

func TestTransfer(t *testing.T) {
	const reference = "7d0e3b4c-2f4a-4d35-9a8e-3e6f1c2b9a10"

	tests := []struct {
		name          string
		sourceID      int
		destID        int
		amount        int64
		source        *domain.Account
		dest          *domain.Account
		creditErr     error
		expectedError error
	}{
		{
			name:          "Invalid amount",
			sourceID:      1,
			destID:        2,
			amount:        0,
			expectedError: ErrInvalidAmount,
		},
		{
			name:          "Same account",
			sourceID:      1,
			destID:        1,
			amount:        10,
			expectedError: ErrSameAccount,
		},
		{
			name:          "Missing destination",
			sourceID:      1,
			destID:        2,
			amount:        10,
			source:        account(1, "alice", domain.AccountStatusActive, 300, 5),
			expectedError: ErrAccountNotFound,
		},
		{
			name:          "Source owned by someone else",
			sourceID:      1,
			destID:        2,
			amount:        10,
			source:        account(1, "bob", domain.AccountStatusActive, 300, 5),
			dest:          account(2, "bob", domain.AccountStatusActive, 0, 5),
			expectedError: ErrAccountNotFound,
		},
		{
			name:          "Source without funds",
			sourceID:      1,
			destID:        2,
			amount:        400,
			source:        account(1, "alice", domain.AccountStatusActive, 300, 5),
			dest:          account(2, "bob", domain.AccountStatusActive, 0, 5),
			expectedError: ErrInsufficientFunds,
		},
		{
			name:          "Source limit exhausted",
			sourceID:      1,
			destID:        2,
			amount:        100,
			source:        account(1, "alice", domain.AccountStatusActive, 300, 0),
			dest:          account(2, "bob", domain.AccountStatusActive, 0, 5),
			expectedError: ErrWithdrawalLimitExceeded,
		},
		{
			name:          "Destination not active",
			sourceID:      1,
			destID:        2,
			amount:        100,
			source:        account(1, "alice", domain.AccountStatusActive, 300, 5),
			dest:          account(2, "bob", domain.AccountStatusPending, 0, 5),
			expectedError: ErrAccountNotActive,
		},
		{
			name:          "Destination balance would overflow",
			sourceID:      1,
			destID:        2,
			amount:        100,
			source:        account(1, "alice", domain.AccountStatusActive, 300, 5),
			dest:          account(2, "bob", domain.AccountStatusActive, math.MaxInt64-50, 5),
			expectedError: ErrBalanceOverflow,
		},
		{
			name:          "Credit leg fails",
			sourceID:      1,
			destID:        2,
			amount:        100,
			source:        account(1, "alice", domain.AccountStatusActive, 300, 5),
			dest:          account(2, "bob", domain.AccountStatusActive, 0, 5),
			creditErr:     errors.New("db error"),
			expectedError: errors.New("db error"),
		},
		{
			name:     "Successful transfer",
			sourceID: 1,
			destID:   2,
			amount:   100,
			source:   account(1, "alice", domain.AccountStatusActive, 300, 5),
			dest:     account(2, "bob", domain.AccountStatusActive, 0, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, transactionRepo, txManager := NewMock(t, Options{WithdrawalLimit: 5})

			var txErr error
			if tt.source != nil {
				txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
						txErr = fn(ctx)
						return txErr
					})
				accountRepo.EXPECT().FindByIDForUpdate(gomock.Any(), tt.sourceID).Return(tt.source, nil)
				accountRepo.EXPECT().FindByIDForUpdate(gomock.Any(), tt.destID).Return(tt.dest, nil)
			}
			if tt.expectedError == nil || tt.creditErr != nil {
				accountRepo.EXPECT().UpdateBalance(gomock.Any(), 1, int64(200), 4).Return(nil)
				transactionRepo.EXPECT().Create(gomock.Any(), &domain.Transaction{
					AccountID: 1,
					Owner:     "alice",
					Type:      domain.TransactionTypeWithdrawal,
					Amount:    100,
					Reference: reference,
				}).Return(&domain.Transaction{ID: 1}, nil)
				accountRepo.EXPECT().UpdateBalance(gomock.Any(), 2, int64(100), 5).Return(tt.creditErr)
			}
			if tt.expectedError == nil {
				transactionRepo.EXPECT().Create(gomock.Any(), &domain.Transaction{
					AccountID: 2,
					Owner:     "bob",
					Type:      domain.TransactionTypeDeposit,
					Amount:    100,
					Reference: reference,
				}).Return(&domain.Transaction{ID: 2}, nil)
			}

			result, err := service.Transfer(context.Background(), "alice", tt.sourceID, tt.destID, tt.amount)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
				if tt.source != nil {
					assert.Error(t, txErr, "transaction function must fail so the manager rolls back")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, reference, result.Reference)
			assert.Equal(t, int64(200), result.Source.Balance)
			assert.Equal(t, 4, result.Source.WithdrawalLimit)
			assert.Equal(t, int64(100), result.Destination.Balance)
			assert.Equal(t, 5, result.Destination.WithdrawalLimit)
		})
	}
}

func TestTransfer_LocksRowsInAscendingOrder(t *testing.T) {
	service, accountRepo, _, txManager := NewMock(t, Options{WithdrawalLimit: 5})
	expectTx(txManager)

	gomock.InOrder(
		accountRepo.EXPECT().FindByIDForUpdate(gomock.Any(), 3).Return(account(3, "bob", domain.AccountStatusPending, 0, 5), nil),
		accountRepo.EXPECT().FindByIDForUpdate(gomock.Any(), 8).Return(account(8, "alice", domain.AccountStatusActive, 100, 5), nil),
	)

	_, err := service.Transfer(context.Background(), "alice", 8, 3, 10)
	assert.ErrorIs(t, err, ErrAccountNotActive)
}

func TestGetAccount(t *testing.T) {
	service, accountRepo, _, _ := NewMock(t, Options{})

	accountRepo.EXPECT().FindByID(gomock.Any(), 1).Return(account(1, "alice", domain.AccountStatusActive, 10, 5), nil)
	result, err := service.GetAccount(context.Background(), "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ID)

	accountRepo.EXPECT().FindByID(gomock.Any(), 2).Return(account(2, "bob", domain.AccountStatusActive, 10, 5), nil)
	_, err = service.GetAccount(context.Background(), "alice", 2)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	accountRepo.EXPECT().FindByID(gomock.Any(), 3).Return(nil, nil)
	_, err = service.GetAccount(context.Background(), "alice", 3)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	accountRepo.EXPECT().FindByID(gomock.Any(), 4).Return(nil, errors.New("db error"))
	_, err = service.GetAccount(context.Background(), "alice", 4)
	assert.EqualError(t, err, "db error")
}

func TestGetAccounts(t *testing.T) {
	service, accountRepo, _, _ := NewMock(t, Options{})

	accounts := []domain.Account{*account(1, "alice", domain.AccountStatusActive, 10, 5)}
	accountRepo.EXPECT().FindAllByOwner(gomock.Any(), "alice").Return(accounts, nil)
	result, err := service.GetAccounts(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, accounts, result)

	accountRepo.EXPECT().FindAllByOwner(gomock.Any(), "alice").Return(nil, errors.New("db error"))
	_, err = service.GetAccounts(context.Background(), "alice")
	assert.Error(t, err)
}

func TestGetTransactions(t *testing.T) {
	tests := []struct {
		name           string
		limit          int
		offset         int
		expectedLimit  int
		expectedOffset int
	}{
		{name: "Defaults", limit: 0, offset: 0, expectedLimit: 50, expectedOffset: 0},
		{name: "Negative values", limit: -1, offset: -10, expectedLimit: 50, expectedOffset: 0},
		{name: "Within bounds", limit: 20, offset: 40, expectedLimit: 20, expectedOffset: 40},
		{name: "Limit capped", limit: 1000, offset: 5, expectedLimit: 100, expectedOffset: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, transactionRepo, _ := NewMock(t, Options{})
			transactionRepo.EXPECT().
				FindByOwner(gomock.Any(), "alice", tt.expectedLimit, tt.expectedOffset).
				Return([]domain.Transaction{{ID: 1}}, nil)

			result, err := service.GetTransactions(context.Background(), "alice", tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Len(t, result, 1)
		})
	}
}
