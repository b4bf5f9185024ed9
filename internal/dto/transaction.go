package dto

import (
	"time"

	"github.com/GlebRadaev/securebank/internal/domain"
	"github.com/GlebRadaev/securebank/pkg/validate"
)

type TransferRequestDTO struct {
	SourceAccountID    int    `json:"source_account_id" example:"42"`
	DestinationAccount string `json:"destination_account" example:"00000000430"`
	Amount             int64  `json:"amount" example:"100"`
}

type TransferResponseDTO struct {
	Reference          string             `json:"reference" example:"7d0e3b4c-2f4a-4d35-9a8e-3e6f1c2b9a10"`
	Amount             int64              `json:"amount" example:"100"`
	Source             AccountResponseDTO `json:"source"`
	DestinationAccount string             `json:"destination_account" example:"00000000430"`
}

type TransactionResponseDTO struct {
	ID            int       `json:"id" example:"7"`
	AccountNumber string    `json:"account_number" example:"00000000422"`
	Type          string    `json:"type" example:"withdrawal"`
	Amount        int64     `json:"amount" example:"100"`
	Reference     string    `json:"reference,omitempty" example:"7d0e3b4c-2f4a-4d35-9a8e-3e6f1c2b9a10"`
	CreatedAt     time.Time `json:"created_at" example:"2024-05-03T10:00:00Z"`
}

func NewTransactionsResponse(transactions []domain.Transaction) []TransactionResponseDTO {
	response := make([]TransactionResponseDTO, len(transactions))
	for i, tx := range transactions {
		response[i] = TransactionResponseDTO{
			ID:            tx.ID,
			AccountNumber: validate.AccountNumber(tx.AccountID),
			Type:          string(tx.Type),
			Amount:        tx.Amount,
			Reference:     tx.Reference,
			CreatedAt:     tx.CreatedAt,
		}
	}
	return response
}
