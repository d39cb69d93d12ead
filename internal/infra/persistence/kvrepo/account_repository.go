package kvrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	domaccount "example.com/storefront/internal/domain/account"
	domkv "example.com/storefront/internal/domain/kv"
)

// AccountRepository keeps accounts as JSON documents in the shared store
// under account:<email>.
type AccountRepository struct {
	mu    sync.Mutex
	store domkv.Store
}

func NewAccountRepository(store domkv.Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(ctx context.Context, a *domaccount.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := domaccount.StorageKey(a.Email)
	_, err := r.store.Get(ctx, key)
	switch {
	case err == nil:
		return domaccount.ErrEmailAlreadyUsed
	case !errors.Is(err, domkv.ErrNotFound):
		return fmt.Errorf("lookup account: %w", err)
	}

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domaccount.Account, error) {
	data, err := r.store.Get(ctx, domaccount.StorageKey(email))
	if errors.Is(err, domkv.ErrNotFound) {
		return nil, domaccount.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	var a domaccount.Account
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	return &a, nil
}
