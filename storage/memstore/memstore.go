// Package memstore provides an in-process SessionRepo backed by a TTL cache.
// Suited to single-instance deployments and tests; expired sessions simply
// disappear, which surfaces to clients as Gone.
package memstore

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/lnward/go-lnauth-server/lnauth"
)

var _ lnauth.SessionRepo = (*Store)(nil)

// Store is a TTL-evicting in-memory session store. The outer mutex makes
// each operation atomic, including the read-modify-write in Update.
// Consuming a challenge still spans two operations in the engine, so a
// concurrent double exchange is not excluded here; the lingering record is
// bounded by the TTL.
type Store struct {
	mu    sync.Mutex
	cache *cache.Cache
}

// New creates a store whose sessions expire after ttl.
func New(ttl time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *Store) Set(_ context.Context, k1 string, session *lnauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *session
	s.cache.SetDefault(k1, &stored)
	return nil
}

func (s *Store) Get(_ context.Context, k1 string) (*lnauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.cache.Get(k1)
	if !ok {
		return nil, lnauth.ErrSessionNotFound
	}

	session, ok := value.(*lnauth.Session)
	if !ok {
		return nil, errors.Errorf("[Get] unexpected value type %T for key %q", value, k1)
	}

	found := *session
	return &found, nil
}

func (s *Store) Update(_ context.Context, k1 string, patch *lnauth.SessionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.cache.Get(k1)
	if !ok {
		return lnauth.ErrSessionNotFound
	}
	session, ok := value.(*lnauth.Session)
	if !ok {
		return errors.Errorf("[Update] unexpected value type %T for key %q", value, k1)
	}

	updated := *session
	if patch.Pubkey != "" {
		updated.Pubkey = patch.Pubkey
	}
	if patch.Sig != "" {
		updated.Sig = patch.Sig
	}
	if patch.Success {
		updated.Success = true
	}

	s.cache.SetDefault(k1, &updated)
	return nil
}

func (s *Store) Delete(_ context.Context, k1 string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(k1)
	return nil
}
