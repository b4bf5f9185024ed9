package pg

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var readCommitted = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

func TestTxManager_Begin(t *testing.T) {
	errFn := errors.New("fn failed")

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		fn        func(ctx context.Context) error
		expectErr error
	}{
		{
			name: "Commit on success",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(readCommitted)
				mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET status = $1 WHERE id = $2")).
					WithArgs("active", 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context) error {
				tx, ok := txFromContext(ctx)
				if !ok {
					return errors.New("no transaction in context")
				}
				_, err := tx.Exec(ctx, "UPDATE accounts SET status = $1 WHERE id = $2", "active", 1)
				return err
			},
		},
		{
			name: "Rollback on error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(readCommitted)
				mock.ExpectRollback()
			},
			fn: func(ctx context.Context) error {
				return errFn
			},
			expectErr: errFn,
		},
		{
			name: "Begin fails",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(readCommitted).WillReturnError(errors.New("connection refused"))
			},
			fn: func(ctx context.Context) error {
				return nil
			},
			expectErr: errors.New("can't begin transaction: connection refused"),
		},
		{
			name: "Commit fails",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(readCommitted)
				mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
			},
			fn: func(ctx context.Context) error {
				return nil
			},
			expectErr: errors.New("can't commit transaction: serialization failure"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.mockSetup(mock)

			err = NewTXManager(mock).Begin(context.Background(), tt.fn)
			if tt.expectErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTxManager_NestedBeginJoinsOuter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectCommit()

	m := NewTXManager(mock)
	calls := 0
	err = m.Begin(context.Background(), func(ctx context.Context) error {
		return m.Begin(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollbackOnPanic(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = NewTXManager(mock).Begin(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollbackErrorIsJoined(t *testing.T) {
	ctrl := gomock.NewController(t)
	beginner := NewMocktxBeginner(ctrl)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	mock.ExpectRollback().WillReturnError(errors.New("conn closed"))

	beginner.EXPECT().BeginTx(gomock.Any(), readCommitted).Return(mock, nil)

	fnErr := errors.New("fn failed")
	err = NewTXManager(beginner).Begin(context.Background(), func(ctx context.Context) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.Contains(t, err.Error(), "conn closed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
