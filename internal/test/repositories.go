package test

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory for tests with an optional
// forced error.
type OrderRepositoryStub struct {
	Err error

	mu     sync.Mutex
	orders map[string]*model.Order
	seq    []string
	puts   int
}

// NewOrderRepositoryStub constructs the stub with initialized storage.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{orders: make(map[string]*model.Order)}
}

// Put stores a deep-enough copy of the order.
func (s *OrderRepositoryStub) Put(ctx context.Context, order *model.Order) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if _, ok := s.orders[order.ID]; !ok {
		s.seq = append(s.seq, order.ID)
	}
	clone := *order
	s.orders[order.ID] = &clone
	return nil
}

// PutCount reports how many times Put was called.
func (s *OrderRepositoryStub) PutCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

// Get returns the stored order or ErrNotFound.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

// ListByUser returns the user's orders in insertion order.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, id := range s.seq {
		if s.orders[id].UserID == userID {
			out = append(out, *s.orders[id])
		}
	}
	return out, nil
}

// ListAll returns every order in insertion order.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0, len(s.seq))
	for _, id := range s.seq {
		out = append(out, *s.orders[id])
	}
	return out, nil
}

// EventRepositoryStub keeps POS events in-memory for tests.
type EventRepositoryStub struct {
	AppendErr error
	UpdateErr error
	ListErr   error

	mu     sync.Mutex
	events []*model.POSEvent
}

// NewEventRepositoryStub constructs the stub.
func NewEventRepositoryStub() *EventRepositoryStub {
	return &EventRepositoryStub{}
}

// Append stores a copy of the event.
func (s *EventRepositoryStub) Append(ctx context.Context, event *model.POSEvent) error {
	if s.AppendErr != nil {
		return s.AppendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *event
	s.events = append(s.events, &clone)
	return nil
}

// Update replaces the stored event with the same id.
func (s *EventRepositoryStub) Update(ctx context.Context, event *model.POSEvent) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, stored := range s.events {
		if stored.ID == event.ID {
			clone := *event
			s.events[i] = &clone
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ListByOrder returns events of an order in creation order.
func (s *EventRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.POSEvent, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.POSEvent
	for _, event := range s.events {
		if event.OrderID == orderID {
			out = append(out, *event)
		}
	}
	return out, nil
}

// ListPending returns events still awaiting delivery sorted by creation time.
func (s *EventRepositoryStub) ListPending(ctx context.Context) ([]model.POSEvent, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.POSEvent
	for _, event := range s.events {
		if event.Status == model.POSEventPending {
			out = append(out, *event)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// All returns a copy of every stored event.
func (s *EventRepositoryStub) All() []model.POSEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.POSEvent, 0, len(s.events))
	for _, event := range s.events {
		out = append(out, *event)
	}
	return out
}

// PromotionRepositoryStub keeps promotions in-memory for tests.
type PromotionRepositoryStub struct {
	Err error

	mu     sync.Mutex
	promos map[string]*model.Promotion
}

// NewPromotionRepositoryStub constructs the stub.
func NewPromotionRepositoryStub() *PromotionRepositoryStub {
	return &PromotionRepositoryStub{promos: make(map[string]*model.Promotion)}
}

// Create stores the promotion unless the code is taken.
func (s *PromotionRepositoryStub) Create(ctx context.Context, promo *model.Promotion) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(promo.Code)
	if _, ok := s.promos[key]; ok {
		return domainErrors.ErrAlreadyExists
	}
	clone := *promo
	s.promos[key] = &clone
	return nil
}

// GetByCode resolves a code case-insensitively.
func (s *PromotionRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Promotion, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	promo, ok := s.promos[strings.ToLower(code)]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *promo
	return &clone, nil
}

// IncrementUsage bumps the usage counter.
func (s *PromotionRepositoryStub) IncrementUsage(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, promo := range s.promos {
		if promo.ID == id {
			promo.UsedCount++
			return nil
		}
	}
	return domainErrors.ErrNotFound
}
