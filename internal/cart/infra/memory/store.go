package memory

import (
	"context"
	"sync"

	"github.com/dwikikusuma/shop-assist/internal/cart/domain"
)

// Store keeps one cart per session in process memory. Each session has its
// own lock so mutations on different sessions never contend.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu   sync.Mutex
	cart domain.Cart
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

func (s *Store) session(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	return sess
}

func (s *Store) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return copyCart(sess.cart), nil
}

func (s *Store) Append(ctx context.Context, sessionID string, item domain.LineItem) error {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.cart.Items = append(sess.cart.Items, item)
	return nil
}

func (s *Store) Drain(ctx context.Context, sessionID string) (domain.Cart, error) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	cart := sess.cart
	sess.cart = domain.Cart{}
	return cart, nil
}

func copyCart(c domain.Cart) domain.Cart {
	items := make([]domain.LineItem, len(c.Items))
	copy(items, c.Items)
	return domain.Cart{Items: items}
}
