package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/GlebRadaev/securebank/docs"
	"github.com/GlebRadaev/securebank/internal/handlers/accounts"
	authhandlers "github.com/GlebRadaev/securebank/internal/handlers/auth"
	"github.com/GlebRadaev/securebank/internal/handlers/transactions"
	"github.com/GlebRadaev/securebank/internal/service"
	"github.com/GlebRadaev/securebank/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:        authhandlers.NewMockService(ctrl),
		AccountService:     accounts.NewMockService(ctrl),
		TransactionService: transactions.NewMockService(ctrl),
		TokenValidator:     auth.NewMockJWTServiceInterface(ctrl),
	}

	h := New(services, []string{"*"})
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.AuthHandler)
	assert.NotNil(t, h.AccountHandler)
	assert.NotNil(t, h.TransactionHandler)
}

func newRouter(t *testing.T) http.Handler {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockAccountHandler := NewMockAccountHandler(ctrl)
	mockTransactionHandler := NewMockTransactionHandler(ctrl)
	validator := auth.NewMockJWTServiceInterface(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Logout(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Profile(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().GetAccounts(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().OpenAccount(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().GetAccount(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().Activate(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().Close(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().Deposit(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().Withdraw(gomock.Any(), gomock.Any()).AnyTimes()
	mockTransactionHandler.EXPECT().Transfer(gomock.Any(), gomock.Any()).AnyTimes()
	mockTransactionHandler.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).AnyTimes()

	validator.EXPECT().ValidateToken("good-token").Return(&auth.Claims{UserID: 1, Login: "alice"}, nil).AnyTimes()
	validator.EXPECT().ValidateToken("expired-token").Return(nil, errors.New("token is expired")).AnyTimes()

	h := &Handlers{
		AuthHandler:        mockAuthHandler,
		AccountHandler:     mockAccountHandler,
		TransactionHandler: mockTransactionHandler,
		tokenValidator:     validator,
		corsOrigins:        []string{"*"},
	}

	router := chi.NewRouter()
	h.InitRoutes(router)
	return router
}

func TestInitRoutes(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/user/register", "", http.StatusOK},
		{"POST", "/api/user/login", "", http.StatusOK},
		{"POST", "/api/user/logout", "", http.StatusUnauthorized},
		{"GET", "/api/user/profile", "", http.StatusUnauthorized},
		{"GET", "/api/user/accounts", "", http.StatusUnauthorized},
		{"POST", "/api/user/accounts", "", http.StatusUnauthorized},
		{"GET", "/api/user/accounts/42", "", http.StatusUnauthorized},
		{"POST", "/api/user/accounts/42/activate", "", http.StatusUnauthorized},
		{"POST", "/api/user/accounts/42/close", "", http.StatusUnauthorized},
		{"POST", "/api/user/accounts/42/deposit", "", http.StatusUnauthorized},
		{"POST", "/api/user/accounts/42/withdraw", "", http.StatusUnauthorized},
		{"POST", "/api/user/transfer", "", http.StatusUnauthorized},
		{"GET", "/api/user/transactions", "", http.StatusUnauthorized},
		{"GET", "/api/user/accounts", "expired-token", http.StatusUnauthorized},
		{"POST", "/api/user/logout", "good-token", http.StatusOK},
		{"GET", "/api/user/profile", "good-token", http.StatusOK},
		{"GET", "/api/user/accounts", "good-token", http.StatusOK},
		{"POST", "/api/user/accounts", "good-token", http.StatusOK},
		{"GET", "/api/user/accounts/42", "good-token", http.StatusOK},
		{"POST", "/api/user/accounts/42/activate", "good-token", http.StatusOK},
		{"POST", "/api/user/accounts/42/close", "good-token", http.StatusOK},
		{"POST", "/api/user/accounts/42/deposit", "good-token", http.StatusOK},
		{"POST", "/api/user/accounts/42/withdraw", "good-token", http.StatusOK},
		{"POST", "/api/user/transfer", "good-token", http.StatusOK},
		{"GET", "/api/user/transactions", "good-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url+" "+tt.token, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest("OPTIONS", "/api/user/accounts", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
