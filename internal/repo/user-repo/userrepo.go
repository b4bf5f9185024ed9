package userrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/securebank/internal/domain"
	"github.com/GlebRadaev/securebank/internal/pg"
	"github.com/GlebRadaev/securebank/internal/service/authservice"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

const (
	uniqueViolation       = "23505"
	emailUniqueConstraint = "users_email_key"
)

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var user domain.User
	err := repo.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.Address,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	query := `
		SELECT id, login, email, password_hash, first_name, last_name, phone, address, created_at
		FROM users
		WHERE login = $1
	`
	return repo.findOne(ctx, query, login)
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, login, email, password_hash, first_name, last_name, phone, address, created_at
		FROM users
		WHERE email = $1
	`
	return repo.findOne(ctx, query, email)
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (login, email, password_hash, first_name, last_name, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query,
		user.Login,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Address,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == emailUniqueConstraint {
				return nil, authservice.ErrEmailTaken
			}
			return nil, authservice.ErrLoginTaken
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}
