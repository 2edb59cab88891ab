package fakesessionrepo

import (
	"context"
	"sync"

	"github.com/lnward/go-lnauth-server/lnauth"
)

var _ lnauth.SessionRepo = (*FakeSessionRepo)(nil)

// FakeSessionRepo is an in-memory SessionRepo for tests. It counts every
// call and lets tests inject per-operation failures.
type FakeSessionRepo struct {
	lock     sync.RWMutex
	sessions map[string]*lnauth.Session

	SetCalls    int
	GetCalls    int
	UpdateCalls int
	DeleteCalls int

	SetErr    error
	GetErr    error
	UpdateErr error
	DeleteErr error
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]*lnauth.Session),
	}
}

func (sr *FakeSessionRepo) Set(_ context.Context, k1 string, session *lnauth.Session) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	sr.SetCalls++
	if sr.SetErr != nil {
		return sr.SetErr
	}

	stored := *session
	sr.sessions[k1] = &stored
	return nil
}

func (sr *FakeSessionRepo) Get(_ context.Context, k1 string) (*lnauth.Session, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	sr.GetCalls++
	if sr.GetErr != nil {
		return nil, sr.GetErr
	}

	session, ok := sr.sessions[k1]
	if !ok {
		return nil, lnauth.ErrSessionNotFound
	}
	found := *session
	return &found, nil
}

func (sr *FakeSessionRepo) Update(_ context.Context, k1 string, patch *lnauth.SessionPatch) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	sr.UpdateCalls++
	if sr.UpdateErr != nil {
		return sr.UpdateErr
	}

	session, ok := sr.sessions[k1]
	if !ok {
		return lnauth.ErrSessionNotFound
	}
	if patch.Pubkey != "" {
		session.Pubkey = patch.Pubkey
	}
	if patch.Sig != "" {
		session.Sig = patch.Sig
	}
	if patch.Success {
		session.Success = true
	}
	return nil
}

func (sr *FakeSessionRepo) Delete(_ context.Context, k1 string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	sr.DeleteCalls++
	if sr.DeleteErr != nil {
		return sr.DeleteErr
	}

	delete(sr.sessions, k1)
	return nil
}

// Calls returns the total number of store invocations across all operations.
func (sr *FakeSessionRepo) Calls() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return sr.SetCalls + sr.GetCalls + sr.UpdateCalls + sr.DeleteCalls
}

// Stored returns the current session for a challenge, or nil.
func (sr *FakeSessionRepo) Stored(k1 string) *lnauth.Session {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	session, ok := sr.sessions[k1]
	if !ok {
		return nil
	}
	found := *session
	return &found
}
