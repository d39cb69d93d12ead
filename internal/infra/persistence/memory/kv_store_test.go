package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domkv "example.com/storefront/internal/domain/kv"
)

func TestKVStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()

	_, err := s.Get(ctx, "cart")
	require.ErrorIs(t, err, domkv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "cart", []byte(`[]`)))
	v, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(v))
}

func TestKVStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'z'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(out))

	out[1] = 'z'
	again, _ := s.Get(ctx, "k")
	require.Equal(t, "abc", string(again))
}

func TestScopedStore_PrefixesKeys(t *testing.T) {
	ctx := context.Background()
	base := NewKVStore()
	a := domkv.NewScoped(base, domkv.ProfilePrefix("a"))
	b := domkv.NewScoped(base, domkv.ProfilePrefix("b"))

	require.NoError(t, a.Set(ctx, "cart", []byte("A")))
	require.NoError(t, b.Set(ctx, "cart", []byte("B")))

	raw, err := base.Get(ctx, "profile:a:cart")
	require.NoError(t, err)
	require.Equal(t, "A", string(raw))

	v, err := b.Get(ctx, "cart")
	require.NoError(t, err)
	require.Equal(t, "B", string(v))

	_, err = a.Get(ctx, "likedProducts")
	require.ErrorIs(t, err, domkv.ErrNotFound)
}
