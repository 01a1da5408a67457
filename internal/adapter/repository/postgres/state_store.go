package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/atmledger/internal/domain"
)

const (
	loadStateSQL = `SELECT name, cash, balance, opening_name, opening_cash, opening_balance, replay_from, updated_at
FROM ledger_state WHERE id = 1`

	loadHistorySQL = `SELECT id, kind, amount, recorded_at, balance_after
FROM transaction_records ORDER BY seq`

	upsertStateSQL = `INSERT INTO ledger_state (id, name, cash, balance, opening_name, opening_cash, opening_balance, replay_from, updated_at)
VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    cash = EXCLUDED.cash,
    balance = EXCLUDED.balance,
    opening_name = EXCLUDED.opening_name,
    opening_cash = EXCLUDED.opening_cash,
    opening_balance = EXCLUDED.opening_balance,
    replay_from = EXCLUDED.replay_from,
    updated_at = EXCLUDED.updated_at`

	pruneHistorySQL = `DELETE FROM transaction_records WHERE NOT (id = ANY($1::text[]))`

	insertHistorySQL = `INSERT INTO transaction_records (id, kind, amount, recorded_at, balance_after, seq)
SELECT * FROM unnest($1::text[], $2::text[], $3::bigint[], $4::text[], $5::bigint[], $6::int[])
ON CONFLICT (id) DO NOTHING`
)

type statePool interface {
	pgxPool
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// StateStore implements usecase.StateStore on PostgreSQL.
// The account lives in the single ledger_state row and history in
// transaction_records, ordered by seq.
type StateStore struct {
	pool      statePool
	txManager *TxManager
	retrier   *Retrier
	closeFn   func()
}

// NewStateStore creates a new StateStore. The store owns pool and closes it.
func NewStateStore(pool *pgxpool.Pool, retrier *Retrier) *StateStore {
	s := newStateStoreWithPool(pool, retrier)
	s.txManager = NewTxManager(pool)
	s.closeFn = pool.Close

	return s
}

func newStateStoreWithPool(pool statePool, retrier *Retrier) *StateStore {
	if retrier == nil {
		retrier = NewRetrier(nil)
	}

	return &StateStore{
		pool:      pool,
		txManager: newTxManagerWithPool(pool),
		retrier:   retrier,
	}
}

// Load reads the state row and its history.
func (s *StateStore) Load(ctx context.Context) (*domain.State, error) {
	var (
		state     domain.State
		updatedAt time.Time
	)

	err := s.pool.QueryRow(ctx, loadStateSQL).Scan(
		&state.Account.Name,
		&state.Account.Cash,
		&state.Account.Balance,
		&state.Opening.Name,
		&state.Opening.Cash,
		&state.Opening.Balance,
		&state.ReplayFrom,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}
	state.UpdatedAt = updatedAt

	rows, err := s.pool.Query(ctx, loadHistorySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	state.History = []domain.TransactionRecord{}
	for rows.Next() {
		var (
			rec  domain.TransactionRecord
			kind string
		)
		if err := rows.Scan(&rec.ID, &kind, &rec.Amount, &rec.Timestamp, &rec.BalanceAfter); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		rec.Kind = domain.TransactionKind(kind)
		state.History = append(state.History, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return &state, nil
}

// Save upserts the state row and syncs history in one transaction.
// Records are immutable, so only missing ones are inserted; records dropped
// by a reset are deleted.
func (s *StateStore) Save(ctx context.Context, state *domain.State) error {
	n := len(state.History)
	ids := make([]string, n)
	kinds := make([]string, n)
	amounts := make([]int64, n)
	timestamps := make([]string, n)
	balances := make([]int64, n)
	seqs := make([]int32, n)
	for i, rec := range state.History {
		ids[i] = rec.ID
		kinds[i] = string(rec.Kind)
		amounts[i] = rec.Amount
		timestamps[i] = rec.Timestamp
		balances[i] = rec.BalanceAfter
		seqs[i] = int32(i)
	}

	return s.retrier.Retry(ctx, "save ledger state", func() error {
		return s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, upsertStateSQL,
				state.Account.Name,
				state.Account.Cash,
				state.Account.Balance,
				state.Opening.Name,
				state.Opening.Cash,
				state.Opening.Balance,
				state.ReplayFrom,
				state.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to upsert ledger state: %w", err)
			}

			if _, err := tx.Exec(ctx, pruneHistorySQL, ids); err != nil {
				return fmt.Errorf("failed to prune history: %w", err)
			}

			if n == 0 {
				return nil
			}

			if _, err := tx.Exec(ctx, insertHistorySQL, ids, kinds, amounts, timestamps, balances, seqs); err != nil {
				return fmt.Errorf("failed to insert history: %w", err)
			}

			return nil
		})
	})
}

func (s *StateStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *StateStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}

	return nil
}
