package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	zkeyring "github.com/zalando/go-keyring"
)

func TestSystemStore(t *testing.T) {
	zkeyring.MockInit()
	store := System()

	t.Run("get before save", func(t *testing.T) {
		_, err := store.Get("work")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save and get", func(t *testing.T) {
		require.NoError(t, store.Save("work", "hunter2"))
		got, err := store.Get("work")
		require.NoError(t, err)
		assert.Equal(t, "hunter2", got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete("work"))
		_, err := store.Get("work")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, store.Delete("work"), ErrNotFound)
	})
}
