package transactionrepo

import (
	"context"

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

func (r *Repository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (account_id, owner, type, amount, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		transaction.AccountID,
		transaction.Owner,
		string(transaction.Type),
		transaction.Amount,
		transaction.Reference,
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Int("accountID", transaction.AccountID), zap.Error(err))
		return nil, err
	}
	return transaction, nil
}

func (r *Repository) FindByOwner(ctx context.Context, owner string, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT id, account_id, owner, type, amount, reference, created_at
		FROM transactions
		WHERE owner = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, owner, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Owner, &tx.Type, &tx.Amount, &tx.Reference, &tx.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to iterate transaction rows", zap.Error(err))
		return nil, err
	}

	return transactions, nil
}
