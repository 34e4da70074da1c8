package memory

import (
	"context"
	"testing"

	"github.com/alphabot-ai/blogcli/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		st := New()
		_, err := st.Get(ctx, "userToken")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("put get delete", func(t *testing.T) {
		st := New()
		require.NoError(t, st.Put(ctx, "userToken", "abc"))

		got, err := st.Get(ctx, "userToken")
		require.NoError(t, err)
		assert.Equal(t, "abc", got)

		require.NoError(t, st.Delete(ctx, "userToken"))
		_, err = st.Get(ctx, "userToken")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
