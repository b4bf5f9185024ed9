package accounts

//go:generate mockgen -source=accounts.go -destination=mock_accounts.go -package=accounts

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/securebank/internal/domain"
	"github.com/GlebRadaev/securebank/internal/dto"
	"github.com/GlebRadaev/securebank/internal/handlers/apierr"
	"github.com/GlebRadaev/securebank/pkg/auth"
	"github.com/GlebRadaev/securebank/pkg/utils"
)

type Service interface {
	OpenAccount(ctx context.Context, owner string, accountType domain.AccountType, currency domain.Currency, initialBalance int64) (*domain.Account, error)
	ActivateAccount(ctx context.Context, owner string, accountID int) (*domain.Account, error)
	CloseAccount(ctx context.Context, owner string, accountID int) (*domain.Account, error)
	Deposit(ctx context.Context, owner string, accountID int, amount int64) (*domain.Account, error)
	Withdraw(ctx context.Context, owner string, accountID int, amount int64) (*domain.Account, error)
	GetAccounts(ctx context.Context, owner string) ([]domain.Account, error)
	GetAccount(ctx context.Context, owner string, accountID int) (*domain.Account, error)
}

type AccountHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *AccountHandler {
	return &AccountHandler{
		ledgerService: ledgerService,
	}
}

// GetAccounts godoc
//
//	@Summary		List accounts
//	@Description	Return every account owned by the authenticated user, ordered by id
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.AccountResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts [get]
func (h *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	accounts, err := h.ledgerService.GetAccounts(r.Context(), session.Login)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAccountsResponse(accounts))
}

// OpenAccount godoc
//
//	@Summary		Open an account
//	@Description	Open a pending account. Saving accounts need an initial balance of at least 500.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.OpenAccountRequestDTO	true	"Account parameters"
//	@Success		201		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid type, currency or amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Initial balance below the minimum for the type"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts [post]
func (h *AccountHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req dto.OpenAccountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	account, err := h.ledgerService.OpenAccount(r.Context(), session.Login,
		domain.AccountType(req.Type), domain.Currency(req.Currency), req.InitialBalance)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewAccountResponse(*account))
}

// GetAccount godoc
//
//	@Summary		Get an account
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Account id"
//	@Success		200	{object}	dto.AccountResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid account id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Account not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts/{id} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	h.withAccount(w, r, h.ledgerService.GetAccount)
}

// Activate godoc
//
//	@Summary		Activate an account
//	@Description	Move a pending account to active
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Account id"
//	@Success		200	{object}	dto.AccountResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid account id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Account not found"
//	@Failure		409	{object}	utils.Response	"Account is not pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts/{id}/activate [post]
func (h *AccountHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.withAccount(w, r, h.ledgerService.ActivateAccount)
}

// Close godoc
//
//	@Summary		Close an account
//	@Description	Move an active account to closed. Closed accounts reject every movement.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Account id"
//	@Success		200	{object}	dto.AccountResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid account id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Account not found"
//	@Failure		409	{object}	utils.Response	"Account is not active or still holds money"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts/{id}/close [post]
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.withAccount(w, r, h.ledgerService.CloseAccount)
}

// Deposit godoc
//
//	@Summary		Deposit money
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Account id"
//	@Param			request	body		dto.AmountRequestDTO	true	"Amount to deposit"
//	@Success		200		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid account id or amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		409		{object}	utils.Response	"Account is not active"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts/{id}/deposit [post]
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.withAmount(w, r, h.ledgerService.Deposit)
}

// Withdraw godoc
//
//	@Summary		Withdraw money
//	@Description	Withdraw from an active account. Each withdrawal uses one of the monthly allowance.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Account id"
//	@Param			request	body		dto.AmountRequestDTO	true	"Amount to withdraw"
//	@Success		200		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid account id or amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		403		{object}	utils.Response	"Monthly withdrawal limit reached"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		409		{object}	utils.Response	"Account is not active"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts/{id}/withdraw [post]
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.withAmount(w, r, h.ledgerService.Withdraw)
}

type accountFunc func(ctx context.Context, owner string, accountID int) (*domain.Account, error)

type amountFunc func(ctx context.Context, owner string, accountID int, amount int64) (*domain.Account, error)

func (h *AccountHandler) withAccount(w http.ResponseWriter, r *http.Request, fn accountFunc) {
	session, accountID, ok := requestTarget(w, r)
	if !ok {
		return
	}
	account, err := fn(r.Context(), session.Login, accountID)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAccountResponse(*account))
}

func (h *AccountHandler) withAmount(w http.ResponseWriter, r *http.Request, fn amountFunc) {
	session, accountID, ok := requestTarget(w, r)
	if !ok {
		return
	}
	var req dto.AmountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	account, err := fn(r.Context(), session.Login, accountID, req.Amount)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAccountResponse(*account))
}

// requestTarget writes the error response itself and reports false when the request cannot proceed.
func requestTarget(w http.ResponseWriter, r *http.Request) (auth.Session, int, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return auth.Session{}, 0, false
	}
	accountID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || accountID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return auth.Session{}, 0, false
	}
	return session, accountID, true
}
