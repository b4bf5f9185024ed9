package service

import (
	"testing"

	"github.com/GlebRadaev/securebank/internal/config"
	"github.com/GlebRadaev/securebank/internal/pg"
	"github.com/GlebRadaev/securebank/internal/repo"
	"github.com/GlebRadaev/securebank/internal/service/authservice"
	"github.com/GlebRadaev/securebank/internal/service/ledgerservice"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos := &repo.Repositories{
		UserRepo:        authservice.NewMockUserRepo(ctrl),
		ActivityRepo:    authservice.NewMockActivityRepo(ctrl),
		AccountRepo:     ledgerservice.NewMockAccountRepo(ctrl),
		TransactionRepo: ledgerservice.NewMockTransactionRepo(ctrl),
		TxManager:       pg.NewMockTXManager(ctrl),
	}

	services := New(repos, &config.Config{JWTSecret: "secret", WithdrawalLimit: 5})

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.AccountService)
	assert.NotNil(t, services.TransactionService)
	assert.NotNil(t, services.TokenValidator)
	assert.Same(t, services.AccountService, services.TransactionService)
}
