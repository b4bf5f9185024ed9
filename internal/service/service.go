package service

import (
	"github.com/GlebRadaev/securebank/internal/config"
	"github.com/GlebRadaev/securebank/internal/handlers/accounts"
	"github.com/GlebRadaev/securebank/internal/handlers/auth"
	"github.com/GlebRadaev/securebank/internal/handlers/transactions"

	pkgauth "github.com/GlebRadaev/securebank/pkg/auth"

	"github.com/GlebRadaev/securebank/internal/repo"
	authservice "github.com/GlebRadaev/securebank/internal/service/authservice"
	ledgerservice "github.com/GlebRadaev/securebank/internal/service/ledgerservice"
)

type Services struct {
	AuthService        auth.Service
	AccountService     accounts.Service
	TransactionService transactions.Service
	TokenValidator     pkgauth.TokenValidator
}

func New(repo *repo.Repositories, cfg *config.Config) *Services {
	jwtService := pkgauth.NewJWTService(cfg.JWTSecret)
	authService := authservice.New(repo.UserRepo, repo.ActivityRepo, &pkgauth.HashService{}, jwtService)
	ledgerService := ledgerservice.New(repo.AccountRepo, repo.TransactionRepo, repo.TxManager, ledgerservice.Options{
		WithdrawalLimit:          cfg.WithdrawalLimit,
		CloseRequiresZeroBalance: cfg.CloseRequiresZeroBalance,
	})

	return &Services{
		AuthService:        authService,
		AccountService:     ledgerService,
		TransactionService: ledgerService,
		TokenValidator:     jwtService,
	}
}
