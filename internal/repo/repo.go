package repo

import (
	"github.com/GlebRadaev/securebank/internal/pg"
	accountrepo "github.com/GlebRadaev/securebank/internal/repo/account-repo"
	activityrepo "github.com/GlebRadaev/securebank/internal/repo/activity-repo"
	transactionrepo "github.com/GlebRadaev/securebank/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/securebank/internal/repo/user-repo"
	"github.com/GlebRadaev/securebank/internal/service/authservice"
	"github.com/GlebRadaev/securebank/internal/service/ledgerservice"
)

type Repositories struct {
	UserRepo        authservice.UserRepo
	ActivityRepo    authservice.ActivityRepo
	AccountRepo     ledgerservice.AccountRepo
	TransactionRepo ledgerservice.TransactionRepo
	TxManager       pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		ActivityRepo:    activityrepo.New(conn),
		AccountRepo:     accountrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		TxManager:       txManager,
	}
}
