package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domcart "example.com/storefront/internal/domain/cart"
	domkv "example.com/storefront/internal/domain/kv"
	domnotice "example.com/storefront/internal/domain/notice"
	domproduct "example.com/storefront/internal/domain/product"
)

const noticeTimer = 1500 * time.Millisecond

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Snapshot is the cart as it stood after an operation.
type Snapshot struct {
	Items     []domcart.LineItem
	Total     decimal.Decimal
	ItemCount int
}

type Presenter interface {
	Render(s Snapshot)
	UpdateBadge(count int)
}

type Notifier interface {
	Notify(n domnotice.Notice)
}

// Store owns one shopper's cart. Every mutation is persisted, rendered and
// recounted before the call returns; calls are serialized.
type Store struct {
	mu        sync.Mutex
	cart      *domcart.Cart
	storage   Storage
	presenter Presenter
	notifier  Notifier
	logger    *zap.Logger
}

func NewStore(storage Storage, presenter Presenter, notifier Notifier, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		cart:      &domcart.Cart{},
		storage:   storage,
		presenter: presenter,
		notifier:  notifier,
		logger:    logger,
	}
}

// Load replaces the in-memory cart with the persisted one. A missing entry
// leaves the cart empty. Malformed data also leaves it empty and the returned
// error wraps domcart.ErrMalformedState. Nothing is written back.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.refresh()

	data, err := s.storage.Get(ctx, domcart.StorageKey)
	if errors.Is(err, domkv.ErrNotFound) {
		s.cart = &domcart.Cart{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	items, err := domcart.Unmarshal(data)
	if err != nil {
		s.cart = &domcart.Cart{}
		return fmt.Errorf("load cart: %w", err)
	}
	s.cart = domcart.New(items)
	s.logger.Debug("cart loaded",
		zap.Int("stored_lines", len(items)),
		zap.Int("lines", s.cart.Len()))
	return nil
}

func (s *Store) Add(ctx context.Context, p domproduct.Product) (domcart.AddResult, error) {
	var result domcart.AddResult
	err := s.mutate(ctx, "add to cart", func(c *domcart.Cart) {
		result = c.Add(p)
		s.notifyAdd(result)
	})
	return result, err
}

// Remove drops the line with the given id. An unknown id is not an error.
func (s *Store) Remove(ctx context.Context, id int64) error {
	return s.mutate(ctx, "remove from cart", func(c *domcart.Cart) {
		if !c.Remove(id) {
			s.logger.Debug("remove ignored, id not in cart", zap.Int64("product_id", id))
		}
	})
}

func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, "clear cart", func(c *domcart.Cart) {
		c.Clear()
	})
}

func (s *Store) Items() []domcart.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// mutate applies fn and then persists, renders and recounts. A persist
// failure does not undo fn; the view still reflects memory.
func (s *Store) mutate(ctx context.Context, op string, fn func(c *domcart.Cart)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.cart)
	err := s.persist(ctx)
	s.refresh()
	if err != nil {
		s.logger.Error("persist cart failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	data, err := domcart.Marshal(s.cart.Items())
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, domcart.StorageKey, data)
}

func (s *Store) refresh() {
	if s.presenter == nil {
		return
	}
	snap := s.snapshot()
	s.presenter.Render(snap)
	s.presenter.UpdateBadge(snap.ItemCount)
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Items:     s.cart.Items(),
		Total:     s.cart.Total(),
		ItemCount: s.cart.ItemCount(),
	}
}

func (s *Store) notifyAdd(r domcart.AddResult) {
	if s.notifier == nil {
		return
	}
	switch r.Change {
	case domcart.ChangeUpdated:
		s.notifier.Notify(domnotice.Notice{
			Kind:  domnotice.KindUpdated,
			Title: "Quantity updated",
			Text:  fmt.Sprintf("%s now has %d in the cart.", r.Item.Name, r.Item.Quantity),
			Timer: noticeTimer,
		})
	case domcart.ChangeAdded:
		s.notifier.Notify(domnotice.Notice{
			Kind:  domnotice.KindAdded,
			Title: "Product added",
			Text:  fmt.Sprintf("%s was added to the cart.", r.Item.Name),
			Timer: noticeTimer,
		})
	}
}
