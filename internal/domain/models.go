package domain

import "time"

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Phone        string    `db:"phone"`
	Address      string    `db:"address"`
	CreatedAt    time.Time `db:"created_at"`
}

type Account struct {
	ID              int           `db:"id"`
	Owner           string        `db:"owner"`
	Type            AccountType   `db:"type"`
	Currency        Currency      `db:"currency"`
	Balance         int64         `db:"balance"`
	Status          AccountStatus `db:"status"`
	WithdrawalLimit int           `db:"withdrawal_limit"`
	LimitResetAt    time.Time     `db:"limit_reset_at"`
	CreatedAt       time.Time     `db:"created_at"`
}

func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

type Transaction struct {
	ID        int             `db:"id"`
	AccountID int             `db:"account_id"`
	Owner     string          `db:"owner"`
	Type      TransactionType `db:"type"`
	Amount    int64           `db:"amount"`
	Reference string          `db:"reference"`
	CreatedAt time.Time       `db:"created_at"`
}

type ActivityLog struct {
	ID        int          `db:"id"`
	Username  string       `db:"username"`
	Activity  ActivityType `db:"activity"`
	CreatedAt time.Time    `db:"created_at"`
}

// AllowancePeriodStart returns the first instant of the calendar month containing t, in UTC.
func AllowancePeriodStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
