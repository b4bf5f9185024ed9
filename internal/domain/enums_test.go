package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccountType_MinimumBalance(t *testing.T) {
	tests := []struct {
		name        string
		accountType AccountType
		valid       bool
		minimum     int64
	}{
		{name: "Basic account", accountType: AccountTypeBasic, valid: true, minimum: 0},
		{name: "Saving account", accountType: AccountTypeSaving, valid: true, minimum: 500},
		{name: "Unknown account type", accountType: AccountType("premium"), valid: false, minimum: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.accountType.Valid())
			assert.Equal(t, tt.minimum, tt.accountType.MinimumBalance())
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		currency Currency
		valid    bool
		symbol   string
	}{
		{currency: CurrencyDollar, valid: true, symbol: "$"},
		{currency: CurrencyEuro, valid: true, symbol: "€"},
		{currency: CurrencyYen, valid: true, symbol: "¥"},
		{currency: CurrencyPound, valid: true, symbol: "£"},
		{currency: Currency("BTC"), valid: false, symbol: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.currency), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.currency.Valid())
			assert.Equal(t, tt.symbol, tt.currency.Symbol())
		})
	}
}

func TestAccount_IsActive(t *testing.T) {
	assert.True(t, (&Account{Status: AccountStatusActive}).IsActive())
	assert.False(t, (&Account{Status: AccountStatusPending}).IsActive())
	assert.False(t, (&Account{Status: AccountStatusClosed}).IsActive())
}

func TestAllowancePeriodStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "Middle of month",
			in:   time.Date(2024, time.May, 17, 13, 45, 0, 0, time.UTC),
			want: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "First instant of month",
			in:   time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Local time converted to UTC first",
			in:   time.Date(2024, time.July, 1, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60)),
			want: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowancePeriodStart(tt.in))
		})
	}
}
