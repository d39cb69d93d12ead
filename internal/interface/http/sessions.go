package http

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	domcart "example.com/storefront/internal/domain/cart"
	domkv "example.com/storefront/internal/domain/kv"
	"example.com/storefront/internal/interface/web"
	cartuc "example.com/storefront/internal/usecase/cart"
	productuc "example.com/storefront/internal/usecase/product"
)

// session is the page context of one browser profile.
type session struct {
	doc       *web.Document
	presenter *web.CartPresenter
	notices   *web.Notices
	cart      *cartuc.Store
	likes     *productuc.Likes
	lastUsed  time.Time
}

// Sessions creates one session per profile on first use. A session idle for
// longer than idle is dropped and rebuilt from storage on the next request.
type Sessions struct {
	mu        sync.Mutex
	store     domkv.Store
	elements  web.Elements
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	logger    *zap.Logger
	byProfile map[string]*session
}

func NewSessions(store domkv.Store, idle time.Duration, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{
		store:     store,
		elements:  web.AllElements,
		idle:      idle,
		now:       time.Now,
		logger:    logger,
		byProfile: make(map[string]*session),
	}
}

func (s *Sessions) get(ctx context.Context, profileID string) (*session, error) {
	if sess := s.lookup(profileID); sess != nil {
		return sess, nil
	}

	sess, err := s.open(ctx, profileID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byProfile[profileID]; ok {
		existing.lastUsed = s.now()
		return existing, nil
	}
	sess.lastUsed = s.now()
	s.byProfile[profileID] = sess
	return sess, nil
}

// lookup returns the cached session of profileID, evicting idle ones first.
func (s *Sessions) lookup(profileID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	sess, ok := s.byProfile[profileID]
	if !ok {
		return nil
	}
	sess.lastUsed = now
	return sess
}

// sweep runs at most once per idle period. Callers hold s.mu.
func (s *Sessions) sweep(now time.Time) {
	if s.idle <= 0 || now.Sub(s.lastSweep) < s.idle {
		return
	}
	s.lastSweep = now
	for id, sess := range s.byProfile {
		if now.Sub(sess.lastUsed) >= s.idle {
			delete(s.byProfile, id)
			s.logger.Debug("session evicted", zap.String("profile", id))
		}
	}
}

func (s *Sessions) open(ctx context.Context, profileID string) (*session, error) {
	logger := s.logger.With(zap.String("profile", profileID))
	scoped := domkv.NewScoped(s.store, domkv.ProfilePrefix(profileID))
	doc := web.NewDocument(s.elements)
	presenter := web.NewCartPresenter(doc, logger)
	notices := web.NewNotices()
	store := cartuc.NewStore(scoped, presenter, notices, logger)
	presenter.Bind(store)

	if err := store.Load(ctx); err != nil {
		if !errors.Is(err, domcart.ErrMalformedState) {
			return nil, fmt.Errorf("open session: %w", err)
		}
		logger.Warn("stored cart discarded", zap.Error(err))
	}

	return &session{
		doc:       doc,
		presenter: presenter,
		notices:   notices,
		cart:      store,
		likes:     productuc.NewLikes(scoped),
	}, nil
}
