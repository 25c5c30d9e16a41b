package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/domain/repository"
)

// Store is a mutex-guarded in-process storage backend. Used for development
// and tests; the read/write contract matches the PostgreSQL backend.
type Store struct {
	mu         sync.RWMutex
	orders     map[string]model.Order
	events     map[string][]model.POSEvent // keyed by order id, insertion order
	eventIndex map[string]string           // event id -> order id
	promotions map[string]model.Promotion  // keyed by lowercased code
}

// New creates an empty store.
func New() *Store {
	return &Store{
		orders:     make(map[string]model.Order),
		events:     make(map[string][]model.POSEvent),
		eventIndex: make(map[string]string),
		promotions: make(map[string]model.Promotion),
	}
}

func (s *Store) Orders() repository.OrderRepository { return (*orderRepo)(s) }

func (s *Store) Events() repository.POSEventRepository { return (*eventRepo)(s) }

func (s *Store) Promotions() repository.PromotionRepository { return (*promoRepo)(s) }

type orderRepo Store

func (r *orderRepo) Put(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *order
	stored.SyncStatus.Events = nil // events live in the event log
	r.orders[order.ID] = stored
	return nil
}

func (r *orderRepo) Get(_ context.Context, id string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.SyncStatus.Events = append([]model.POSEvent(nil), r.events[id]...)
	return &order, nil
}

func (r *orderRepo) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []model.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	sortByCreatedDesc(result)
	return result, nil
}

func (r *orderRepo) ListAll(_ context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]model.Order, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, order)
	}
	sortByCreatedDesc(result)
	return result, nil
}

func sortByCreatedDesc(orders []model.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

type eventRepo Store

func (r *eventRepo) Append(_ context.Context, event *model.POSEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.OrderID] = append(r.events[event.OrderID], *event)
	r.eventIndex[event.ID] = event.OrderID
	return nil
}

func (r *eventRepo) Update(_ context.Context, event *model.POSEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	orderID, ok := r.eventIndex[event.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	list := r.events[orderID]
	for i := range list {
		if list[i].ID == event.ID {
			list[i] = *event
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (r *eventRepo) ListByOrder(_ context.Context, orderID string) ([]model.POSEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.POSEvent(nil), r.events[orderID]...), nil
}

func (r *eventRepo) ListPending(_ context.Context) ([]model.POSEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []model.POSEvent
	for _, list := range r.events {
		for _, event := range list {
			if event.Status == model.POSEventPending {
				result = append(result, event)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

type promoRepo Store

func (r *promoRepo) Create(_ context.Context, promo *model.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(promo.Code)
	if _, exists := r.promotions[key]; exists {
		return domainErrors.ErrAlreadyExists
	}
	r.promotions[key] = *promo
	return nil
}

func (r *promoRepo) GetByCode(_ context.Context, code string) (*model.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	promo, ok := r.promotions[strings.ToLower(code)]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &promo, nil
}

func (r *promoRepo) IncrementUsage(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, promo := range r.promotions {
		if promo.ID == id {
			promo.UsedCount++
			r.promotions[key] = promo
			return nil
		}
	}
	return domainErrors.ErrNotFound
}
