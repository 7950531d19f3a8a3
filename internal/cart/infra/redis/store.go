package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dwikikusuma/shop-assist/internal/cart/domain"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// Store keeps carts in Redis, one JSON value per session key, so cart state
// survives a process restart and can be shared by replicas. Read-modify-write
// on Append is serialized per session with an in-process lock; the deployment
// assumption is a single writer per session (one conversation, one process).
type Store struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Store) lock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

func (s *Store) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	raw, err := s.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart get: %w", err)
	}

	return decode(raw)
}

func (s *Store) Append(ctx context.Context, sessionID string, item domain.LineItem) error {
	l := s.lock(sessionID)
	l.Lock()
	defer l.Unlock()

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	cart.Items = append(cart.Items, item)

	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart encode: %w", err)
	}

	if err := s.client.Set(ctx, cartKeyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart set: %w", err)
	}
	return nil
}

// Drain relies on GETDEL so read-and-clear is a single Redis command: no
// interleaved Append can observe a partially cleared cart.
func (s *Store) Drain(ctx context.Context, sessionID string) (domain.Cart, error) {
	l := s.lock(sessionID)
	l.Lock()
	defer l.Unlock()

	raw, err := s.client.GetDel(ctx, cartKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart drain: %w", err)
	}

	return decode(raw)
}

func decode(raw []byte) (domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("cart decode: %w", err)
	}
	return cart, nil
}
