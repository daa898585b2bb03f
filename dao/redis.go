package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"frontdesk/model"
)

const (
	sessionKeyPrefix = "frontdesk:session:"
	ticketKeyPrefix  = "frontdesk:ticket:"
)

// RedisStore keeps conversation states and tickets as JSON blobs under
// prefixed keys. Tickets are keyed by session id, which makes the
// one-ticket-per-session invariant structural.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr, password string, db int, ttl time.Duration) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}

	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state model.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save writes the state with an optimistic check: if the stored copy was
// updated after the one this turn started from, the write is retried so a
// racing turn's append is not silently dropped. Turn serialization per
// session remains the caller's responsibility; this is a backstop.
func (s *RedisStore) Save(ctx context.Context, sessionID string, state *model.ConversationState) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}
	if state == nil {
		return fmt.Errorf("%w: state is nil", ErrInvalidParam)
	}

	const maxRetries = 3
	key := sessionKeyPrefix + sessionID

	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, key).Bytes()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}

			if err == nil {
				var stored model.ConversationState
				if jerr := json.Unmarshal(current, &stored); jerr == nil {
					if isTimestampNewer(stored.UpdatedAt, state.UpdatedAt) {
						return ErrStateConflict
					}
				}
			}

			data, err := json.Marshal(state)
			if err != nil {
				return err
			}
			return tx.Set(ctx, key, data, s.ttl).Err()
		}, key)

		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) && !errors.Is(err, ErrStateConflict) {
			return err
		}
		lastErr = err
		time.Sleep(time.Millisecond * time.Duration(10*(i+1)))
	}

	return fmt.Errorf("%w for session %s: %v", ErrMaxRetries, sessionID, lastErr)
}

func (s *RedisStore) FindBySession(ctx context.Context, sessionID string) (*model.Ticket, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}

	data, err := s.client.Get(ctx, ticketKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ticket model.Ticket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *RedisStore) Upsert(ctx context.Context, ticket *model.Ticket) error {
	if ticket == nil || ticket.SessionID == "" {
		return fmt.Errorf("%w: ticket or ticket.SessionID is empty", ErrInvalidParam)
	}

	data, err := json.Marshal(ticket)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, ticketKeyPrefix+ticket.SessionID, data, s.ttl).Err()
}

func (s *RedisStore) List(ctx context.Context) ([]*model.Ticket, error) {
	var tickets []*model.Ticket

	iter := s.client.Scan(ctx, 0, ticketKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var ticket model.Ticket
		if err := json.Unmarshal(data, &ticket); err != nil {
			return nil, err
		}
		tickets = append(tickets, &ticket)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// isTimestampNewer compares two RFC3339 timestamps, falling back to string
// comparison when either fails to parse.
func isTimestampNewer(a, b string) bool {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA == nil && errB == nil {
		return ta.After(tb)
	}
	return a > b
}
