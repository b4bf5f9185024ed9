package domain

type AccountType string

const (
	AccountTypeBasic  AccountType = "basic"
	AccountTypeSaving AccountType = "saving"
)

// savingMinimumBalance is expressed in integer units of the account currency.
const savingMinimumBalance int64 = 500

func (t AccountType) Valid() bool {
	return t == AccountTypeBasic || t == AccountTypeSaving
}

// MinimumBalance returns the smallest opening balance accepted for the type.
func (t AccountType) MinimumBalance() int64 {
	if t == AccountTypeSaving {
		return savingMinimumBalance
	}
	return 0
}

type Currency string

const (
	CurrencyDollar Currency = "USD"
	CurrencyEuro   Currency = "EUR"
	CurrencyYen    Currency = "JPY"
	CurrencyPound  Currency = "GBP"
)

var currencySymbols = map[Currency]string{
	CurrencyDollar: "$",
	CurrencyEuro:   "€",
	CurrencyYen:    "¥",
	CurrencyPound:  "£",
}

func (c Currency) Valid() bool {
	_, ok := currencySymbols[c]
	return ok
}

func (c Currency) Symbol() string {
	return currencySymbols[c]
}

type AccountStatus string

const (
	AccountStatusPending AccountStatus = "pending"
	AccountStatusActive  AccountStatus = "active"
	AccountStatusClosed  AccountStatus = "closed"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

type ActivityType string

const (
	ActivityLogin  ActivityType = "login"
	ActivityLogout ActivityType = "logout"
)
