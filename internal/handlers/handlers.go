package handlers

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/securebank/docs"
	accounthandlers "github.com/GlebRadaev/securebank/internal/handlers/accounts"
	authhandlers "github.com/GlebRadaev/securebank/internal/handlers/auth"
	transactionhandlers "github.com/GlebRadaev/securebank/internal/handlers/transactions"
	"github.com/GlebRadaev/securebank/internal/service"
	"github.com/GlebRadaev/securebank/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Profile(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	GetAccounts(w http.ResponseWriter, r *http.Request)
	OpenAccount(w http.ResponseWriter, r *http.Request)
	GetAccount(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
}

type TransactionHandler interface {
	Transfer(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	AccountHandler     AccountHandler
	TransactionHandler TransactionHandler

	tokenValidator auth.TokenValidator
	corsOrigins    []string
}

func New(s *service.Services, corsOrigins []string) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService),
		AccountHandler:     accounthandlers.New(s.AccountService),
		TransactionHandler: transactionhandlers.New(s.TransactionService),
		tokenValidator:     s.TokenValidator,
		corsOrigins:        corsOrigins,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		cors.Handler(cors.Options{
			AllowedOrigins: h.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"Authorization"},
			MaxAge:         300,
		}),
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.tokenValidator))
			r.Post("/logout", h.AuthHandler.Logout)
			r.Get("/profile", h.AuthHandler.Profile)
			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", h.AccountHandler.GetAccounts)
				r.Post("/", h.AccountHandler.OpenAccount)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.AccountHandler.GetAccount)
					r.Post("/activate", h.AccountHandler.Activate)
					r.Post("/close", h.AccountHandler.Close)
					r.Post("/deposit", h.AccountHandler.Deposit)
					r.Post("/withdraw", h.AccountHandler.Withdraw)
				})
			})
			r.Post("/transfer", h.TransactionHandler.Transfer)
			r.Get("/transactions", h.TransactionHandler.GetTransactions)
		})
	})

	return r
}
