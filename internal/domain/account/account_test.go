package account

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWelcomeName(t *testing.T) {
	require.Equal(t, "maria", WelcomeName("maria@example.com"))
	require.Equal(t, "bob", WelcomeName(" bob "))
	require.Equal(t, "", WelcomeName("@example.com"))
}

func TestStorageKey_NormalizesEmail(t *testing.T) {
	require.Equal(t, "account:maria@example.com", StorageKey("  Maria@Example.COM "))
}
