package session

import (
	"context"
	"testing"
	"time"

	"github.com/alphabot-ai/blogcli/internal/store/memory"
	"github.com/alphabot-ai/blogcli/internal/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, userID int64, role string, exp time.Time) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"name":    "tester",
		"exp":     exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return raw
}

func newStore() (*Store, *memory.Store, *memory.Store) {
	durable, sess := memory.New(), memory.New()
	return NewStore(durable, sess), durable, sess
}

func TestStorePrecedence(t *testing.T) {
	ctx := context.Background()
	st, durable, sess := newStore()

	_, err := st.Get(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, st.Set(ctx, "session-token", false))
	got, err := st.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session-token", got)
	_, err = durable.Get(ctx, TokenKey)
	assert.Error(t, err, "non-persistent set must not touch durable area")

	require.NoError(t, st.Set(ctx, "durable-token", true))
	got, err = st.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "durable-token", got, "durable wins when both are present")

	require.NoError(t, st.Clear(ctx))
	_, err = st.Get(ctx)
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = sess.Get(ctx, TokenKey)
	assert.Error(t, err)
}

func TestIsAuthenticated(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	clock := func() time.Time { return now }

	t.Run("no token passes", func(t *testing.T) {
		st, _, _ := newStore()
		assert.True(t, NewGate(st, clock, nil).IsAuthenticated(ctx))
	})

	t.Run("expired token is cleared", func(t *testing.T) {
		st, _, _ := newStore()
		require.NoError(t, st.Set(ctx, sign(t, 1, "reader", now.Add(-10*time.Second)), true))
		require.NoError(t, st.Set(ctx, sign(t, 1, "reader", now.Add(-10*time.Second)), false))

		assert.False(t, NewGate(st, clock, nil).IsAuthenticated(ctx))
		_, err := st.Get(ctx)
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("malformed token is cleared", func(t *testing.T) {
		st, _, _ := newStore()
		require.NoError(t, st.Set(ctx, "garbage", false))

		assert.False(t, NewGate(st, clock, nil).IsAuthenticated(ctx))
		_, err := st.Get(ctx)
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("valid token passes", func(t *testing.T) {
		st, _, _ := newStore()
		raw := sign(t, 1, "reader", now.Add(time.Hour))
		require.NoError(t, st.Set(ctx, raw, false))

		assert.True(t, NewGate(st, clock, nil).IsAuthenticated(ctx))
		got, err := st.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})
}

func TestRequireBlogger(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	clock := func() time.Time { return now }

	st, _, _ := newStore()
	gate := NewGate(st, clock, nil)

	_, err := gate.RequireBlogger(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, st.Set(ctx, sign(t, 5, "reader", now.Add(time.Hour)), false))
	_, err = gate.RequireBlogger(ctx)
	assert.ErrorIs(t, err, ErrNotBlogger)

	require.NoError(t, st.Set(ctx, sign(t, 5, "blogger", now.Add(time.Hour)), true))
	id, err := gate.RequireBlogger(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id.Payload.UserID)

	require.NoError(t, st.Set(ctx, "not-a-jwt", true))
	_, err = gate.RequireBlogger(ctx)
	assert.ErrorIs(t, err, token.ErrMalformedToken)
}

func TestRequireOwner(t *testing.T) {
	p := token.Payload{UserID: 9}
	assert.NoError(t, RequireOwner(p, 9))
	assert.ErrorIs(t, RequireOwner(p, 10), ErrNotOwner)
}
