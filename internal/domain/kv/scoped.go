package kv

import "context"

// Scoped prefixes every key so that several owners can share one Store.
type Scoped struct {
	base   Store
	prefix string
}

func NewScoped(base Store, prefix string) *Scoped {
	return &Scoped{base: base, prefix: prefix}
}

// ProfileKeyPrefix starts every key owned by a browser profile.
const ProfileKeyPrefix = "profile:"

// ProfilePrefix is the key prefix of one browser profile.
func ProfilePrefix(profileID string) string {
	return ProfileKeyPrefix + profileID + ":"
}

func (s *Scoped) Key(key string) string {
	return s.prefix + key
}

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.base.Get(ctx, s.Key(key))
}

func (s *Scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.base.Set(ctx, s.Key(key), value)
}
