package transactions

//go:generate mockgen -source=transactions.go -destination=mock_transactions.go -package=transactions

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/securebank/internal/domain"
	"github.com/GlebRadaev/securebank/internal/dto"
	"github.com/GlebRadaev/securebank/internal/handlers/apierr"
	"github.com/GlebRadaev/securebank/internal/service/ledgerservice"
	"github.com/GlebRadaev/securebank/pkg/auth"
	"github.com/GlebRadaev/securebank/pkg/utils"
	"github.com/GlebRadaev/securebank/pkg/validate"
)

type Service interface {
	Transfer(ctx context.Context, owner string, sourceID, destinationID int, amount int64) (*ledgerservice.TransferResult, error)
	GetTransactions(ctx context.Context, owner string, limit, offset int) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
	}
}

// Transfer godoc
//
//	@Summary		Transfer money
//	@Description	Move money from one of the user's accounts to any active account, identified by its account number.
//	@Description	The debit and the credit are committed together or not at all.
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.TransferRequestDTO	true	"Transfer request body"
//	@Success		200		{object}	dto.TransferResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request or same source and destination"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		403		{object}	utils.Response	"Monthly withdrawal limit reached"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		409		{object}	utils.Response	"Account is not active"
//	@Failure		422		{object}	utils.Response	"Invalid destination account number"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transfer [post]
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req dto.TransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SourceAccountID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid source account id")
		return
	}
	destinationID, err := validate.ParseAccountNumber(req.DestinationAccount)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	result, err := h.ledgerService.Transfer(r.Context(), session.Login, req.SourceAccountID, destinationID, req.Amount)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.TransferResponseDTO{
		Reference:          result.Reference,
		Amount:             req.Amount,
		Source:             dto.NewAccountResponse(result.Source),
		DestinationAccount: validate.AccountNumber(result.Destination.ID),
	})
}

// GetTransactions godoc
//
//	@Summary		Transaction history
//	@Description	Return the user's transactions, newest first. limit defaults to 50 and is capped at 100.
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Rows to skip"
//	@Success		200		{array}		dto.TransactionResponseDTO
//	@Success		204		{object}	utils.Response	"No transactions"
//	@Failure		400		{object}	utils.Response	"Invalid paging parameters"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid offset")
		return
	}
	transactions, err := h.ledgerService.GetTransactions(r.Context(), session.Login, limit, offset)
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	if len(transactions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No transactions")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionsResponse(transactions))
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
