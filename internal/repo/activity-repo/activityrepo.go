package activityrepo

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

func (r *Repository) Create(ctx context.Context, entry *domain.ActivityLog) (*domain.ActivityLog, error) {
	query := `
		INSERT INTO activity_logs (username, activity)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, entry.Username, string(entry.Activity)).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		zap.L().Error("can't save activity", zap.String("username", entry.Username), zap.Error(err))
		return nil, err
	}
	return entry, nil
}
