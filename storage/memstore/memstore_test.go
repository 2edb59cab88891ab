package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/lnward/go-lnauth-server/lnauth"
	"github.com/lnward/go-lnauth-server/storage/memstore"
)

const testK1 = "5b3f2a1c00112233445566778899aabbccddeeff00112233445566778899aabb"

func TestSetGet(t *testing.T) {
	store := memstore.New(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testK1, &lnauth.Session{K1: testK1, State: "state-1"}))

	session, err := store.Get(ctx, testK1)
	require.NoError(t, err)
	require.Equal(t, testK1, session.K1)
	require.Equal(t, "state-1", session.State)
	require.False(t, session.Success)
}

func TestGetUnknownKey(t *testing.T) {
	store := memstore.New(time.Minute)

	_, err := store.Get(context.Background(), testK1)
	require.True(t, errors.Is(err, lnauth.ErrSessionNotFound))
}

func TestUpdateMerges(t *testing.T) {
	store := memstore.New(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testK1, &lnauth.Session{K1: testK1, State: "state-1"}))
	require.NoError(t, store.Update(ctx, testK1, &lnauth.SessionPatch{
		Pubkey:  "02abcd",
		Sig:     "3044deadbeef",
		Success: true,
	}))

	session, err := store.Get(ctx, testK1)
	require.NoError(t, err)
	require.Equal(t, "state-1", session.State, "update must merge, not replace")
	require.Equal(t, "02abcd", session.Pubkey)
	require.Equal(t, "3044deadbeef", session.Sig)
	require.True(t, session.Success)
}

func TestUpdateUnknownKey(t *testing.T) {
	store := memstore.New(time.Minute)

	err := store.Update(context.Background(), testK1, &lnauth.SessionPatch{Success: true})
	require.True(t, errors.Is(err, lnauth.ErrSessionNotFound))
}

func TestGetAfterDelete(t *testing.T) {
	store := memstore.New(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testK1, &lnauth.Session{K1: testK1, State: "state-1"}))
	require.NoError(t, store.Delete(ctx, testK1))

	_, err := store.Get(ctx, testK1)
	require.True(t, errors.Is(err, lnauth.ErrSessionNotFound))
}

func TestDeleteUnknownKeyIsNoop(t *testing.T) {
	store := memstore.New(time.Minute)
	require.NoError(t, store.Delete(context.Background(), testK1))
}

func TestSessionsExpire(t *testing.T) {
	store := memstore.New(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testK1, &lnauth.Session{K1: testK1, State: "state-1"}))

	require.Eventually(t, func() bool {
		_, err := store.Get(ctx, testK1)
		return errors.Is(err, lnauth.ErrSessionNotFound)
	}, time.Second, 5*time.Millisecond)
}

func TestStoredSessionIsIsolatedFromCaller(t *testing.T) {
	store := memstore.New(time.Minute)
	ctx := context.Background()

	original := &lnauth.Session{K1: testK1, State: "state-1"}
	require.NoError(t, store.Set(ctx, testK1, original))

	original.Success = true

	session, err := store.Get(ctx, testK1)
	require.NoError(t, err)
	require.False(t, session.Success, "mutating the caller's session must not affect the store")
}
