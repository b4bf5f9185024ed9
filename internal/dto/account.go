package dto

import (
	"time"

	"github.com/GlebRadaev/securebank/internal/domain"
	"github.com/GlebRadaev/securebank/pkg/validate"
)

type OpenAccountRequestDTO struct {
	Type           string `json:"type" example:"saving" enums:"basic,saving"`
	Currency       string `json:"currency" example:"USD" enums:"USD,EUR,JPY,GBP"`
	InitialBalance int64  `json:"initial_balance" example:"500"`
}

type AmountRequestDTO struct {
	Amount int64 `json:"amount" example:"150"`
}

type AccountResponseDTO struct {
	ID              int       `json:"id" example:"42"`
	Number          string    `json:"number" example:"00000000422"`
	Type            string    `json:"type" example:"saving"`
	Currency        string    `json:"currency" example:"USD"`
	Symbol          string    `json:"symbol" example:"$"`
	Balance         int64     `json:"balance" example:"500"`
	Status          string    `json:"status" example:"active"`
	WithdrawalsLeft int       `json:"withdrawals_left" example:"5"`
	CreatedAt       time.Time `json:"created_at" example:"2024-05-03T10:00:00Z"`
}

func NewAccountResponse(a domain.Account) AccountResponseDTO {
	return AccountResponseDTO{
		ID:              a.ID,
		Number:          validate.AccountNumber(a.ID),
		Type:            string(a.Type),
		Currency:        string(a.Currency),
		Symbol:          a.Currency.Symbol(),
		Balance:         a.Balance,
		Status:          string(a.Status),
		WithdrawalsLeft: a.WithdrawalLimit,
		CreatedAt:       a.CreatedAt,
	}
}

func NewAccountsResponse(accounts []domain.Account) []AccountResponseDTO {
	response := make([]AccountResponseDTO, len(accounts))
	for i, a := range accounts {
		response[i] = NewAccountResponse(a)
	}
	return response
}
