package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/atmledger/internal/domain"
)

// DefaultKeyPrefix namespaces every key the ledger writes.
const DefaultKeyPrefix = "atm:"

// StateStore implements usecase.StateStore on top of Redis.
//
// Layout:
//
//	<prefix>account  hash  name, cash, balance, replay_from, updated_at
//	<prefix>opening  hash  name, cash, balance
//	<prefix>history  list  one JSON TransactionRecord per element
type StateStore struct {
	client *redis.Client
	prefix string
}

// NewStateStore creates a new StateStore. An empty prefix uses DefaultKeyPrefix.
func NewStateStore(client *redis.Client, prefix string) *StateStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return &StateStore{
		client: client,
		prefix: prefix,
	}
}

func (s *StateStore) accountKey() string { return s.prefix + "account" }
func (s *StateStore) openingKey() string { return s.prefix + "opening" }
func (s *StateStore) historyKey() string { return s.prefix + "history" }

// Load reads the account, opening and history keys.
func (s *StateStore) Load(ctx context.Context) (*domain.State, error) {
	fields, err := s.client.HGetAll(ctx, s.accountKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read account: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrStateNotFound
	}

	state := &domain.State{}

	state.Account, err = parseAccount(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to parse account: %w", err)
	}

	if v := fields["replay_from"]; v != "" {
		if state.ReplayFrom, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("failed to parse replay_from: %w", err)
		}
	}
	if v := fields["updated_at"]; v != "" {
		if state.UpdatedAt, err = time.Parse(time.RFC3339Nano, v); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
	}

	opening, err := s.client.HGetAll(ctx, s.openingKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read opening account: %w", err)
	}
	if len(opening) > 0 {
		if state.Opening, err = parseAccount(opening); err != nil {
			return nil, fmt.Errorf("failed to parse opening account: %w", err)
		}
	}

	raw, err := s.client.LRange(ctx, s.historyKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	state.History = make([]domain.TransactionRecord, 0, len(raw))
	for i, item := range raw {
		var rec domain.TransactionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode history record %d: %w", i, err)
		}
		state.History = append(state.History, rec)
	}

	return state, nil
}

// Save rewrites all three keys in one MULTI/EXEC.
func (s *StateStore) Save(ctx context.Context, state *domain.State) error {
	history := make([]any, 0, len(state.History))
	for _, rec := range state.History {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record %s: %w", rec.ID, err)
		}
		history = append(history, b)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.accountKey(),
			"name", state.Account.Name,
			"cash", state.Account.Cash,
			"balance", state.Account.Balance,
			"replay_from", state.ReplayFrom,
			"updated_at", state.UpdatedAt.Format(time.RFC3339Nano),
		)
		pipe.HSet(ctx, s.openingKey(),
			"name", state.Opening.Name,
			"cash", state.Opening.Cash,
			"balance", state.Opening.Balance,
		)
		pipe.Del(ctx, s.historyKey())
		if len(history) > 0 {
			pipe.RPush(ctx, s.historyKey(), history...)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write ledger state: %w", err)
	}

	return nil
}

func (s *StateStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close is a no-op; the client is shared and closed by its owner.
func (s *StateStore) Close() error {
	return nil
}

func parseAccount(fields map[string]string) (domain.Account, error) {
	cash, err := strconv.ParseInt(fields["cash"], 10, 64)
	if err != nil {
		return domain.Account{}, fmt.Errorf("cash: %w", err)
	}

	balance, err := strconv.ParseInt(fields["balance"], 10, 64)
	if err != nil {
		return domain.Account{}, fmt.Errorf("balance: %w", err)
	}

	return domain.Account{
		Name:    fields["name"],
		Cash:    cash,
		Balance: balance,
	}, nil
}
