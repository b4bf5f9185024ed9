package apierr

import (
	"errors"
	"net/http"

	"github.com/GlebRadaev/securebank/internal/service/ledgerservice"
	"github.com/GlebRadaev/securebank/pkg/utils"
	"github.com/GlebRadaev/securebank/pkg/validate"
	"go.uber.org/zap"
)

const internalMessage = "Transaction failed. Please try again."

var statuses = []struct {
	err    error
	status int
}{
	{ledgerservice.ErrInvalidAmount, http.StatusBadRequest},
	{ledgerservice.ErrInvalidAccountType, http.StatusBadRequest},
	{ledgerservice.ErrInvalidCurrency, http.StatusBadRequest},
	{ledgerservice.ErrSameAccount, http.StatusBadRequest},
	{ledgerservice.ErrAccountNotFound, http.StatusNotFound},
	{ledgerservice.ErrAccountNotActive, http.StatusConflict},
	{ledgerservice.ErrInvalidStatusTransition, http.StatusConflict},
	{ledgerservice.ErrNonZeroBalance, http.StatusConflict},
	{ledgerservice.ErrInsufficientFunds, http.StatusPaymentRequired},
	{ledgerservice.ErrWithdrawalLimitExceeded, http.StatusForbidden},
	{ledgerservice.ErrBelowMinimumBalance, http.StatusUnprocessableEntity},
	{ledgerservice.ErrBalanceOverflow, http.StatusUnprocessableEntity},
	{validate.ErrInvalidAccountNumber, http.StatusUnprocessableEntity},
}

// Status maps a ledger error to its HTTP status; unknown errors are internal.
func Status(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// Respond writes err with the matching status. Internal errors are logged and hidden from the client.
func Respond(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, status, internalMessage)
		return
	}
	utils.RespondWithError(w, status, err.Error())
}
