package accountrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/GlebRadaev/securebank/internal/domain"
	"github.com/GlebRadaev/securebank/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Owner,
		&account.Type,
		&account.Currency,
		&account.Balance,
		&account.Status,
		&account.WithdrawalLimit,
		&account.LimitResetAt,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *Repository) findOne(ctx context.Context, query string, id int) (*domain.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get account", zap.Int("accountID", id), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Account, error) {
	query := `
		SELECT id, owner, type, currency, balance, status, withdrawal_limit, limit_reset_at, created_at
		FROM accounts
		WHERE id = $1
	`
	return r.findOne(ctx, query, id)
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Account, error) {
	query := `
		SELECT id, owner, type, currency, balance, status, withdrawal_limit, limit_reset_at, created_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`
	return r.findOne(ctx, query, id)
}

func (r *Repository) FindAllByOwner(ctx context.Context, owner string) ([]domain.Account, error) {
	query := `
		SELECT id, owner, type, currency, balance, status, withdrawal_limit, limit_reset_at, created_at
		FROM accounts
		WHERE owner = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, owner)
	if err != nil {
		zap.L().Error("failed to fetch accounts", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			zap.L().Error("failed to scan account row", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to iterate account rows", zap.Error(err))
		return nil, err
	}
	return accounts, nil
}

func (r *Repository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (owner, type, currency, balance, status, withdrawal_limit, limit_reset_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		account.Owner,
		string(account.Type),
		string(account.Currency),
		account.Balance,
		string(account.Status),
		account.WithdrawalLimit,
		account.LimitResetAt,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		zap.L().Error("can't save account", zap.String("owner", account.Owner), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) UpdateBalance(ctx context.Context, id int, balance int64, withdrawalLimit int) error {
	query := `
		UPDATE accounts
		SET balance = $1, withdrawal_limit = $2
		WHERE id = $3
	`
	if _, err := r.db.Exec(ctx, query, balance, withdrawalLimit, id); err != nil {
		zap.L().Error("failed to update account balance", zap.Int("accountID", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status domain.AccountStatus) error {
	query := `
		UPDATE accounts
		SET status = $1
		WHERE id = $2
	`
	if _, err := r.db.Exec(ctx, query, string(status), id); err != nil {
		zap.L().Error("failed to update account status", zap.Int("accountID", id), zap.Error(err))
		return err
	}
	return nil
}

// FindDueForReset returns ids of open accounts whose allowance belongs to a period before periodStart.
func (r *Repository) FindDueForReset(ctx context.Context, periodStart time.Time, limit int) ([]int, error) {
	query := `
		SELECT id
		FROM accounts
		WHERE status <> 'closed' AND limit_reset_at < $1
		ORDER BY id
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, periodStart, limit)
	if err != nil {
		zap.L().Error("failed to fetch accounts due for reset", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("failed to scan account id", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to iterate account ids", zap.Error(err))
		return nil, err
	}
	return ids, nil
}

// ResetWithdrawalLimit reports false when the account was already reset for periodStart.
func (r *Repository) ResetWithdrawalLimit(ctx context.Context, id int, limit int, periodStart time.Time) (bool, error) {
	query := `
		UPDATE accounts
		SET withdrawal_limit = $1, limit_reset_at = $2
		WHERE id = $3 AND limit_reset_at < $2
	`
	tag, err := r.db.Exec(ctx, query, limit, periodStart, id)
	if err != nil {
		zap.L().Error("failed to reset withdrawal limit", zap.Int("accountID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
