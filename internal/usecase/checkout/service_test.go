package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domnotice "example.com/storefront/internal/domain/notice"
)

type mockCart struct {
	total    decimal.Decimal
	count    int
	clearErr error
	cleared  bool
}

func (m *mockCart) Total() decimal.Decimal { return m.total }
func (m *mockCart) ItemCount() int         { return m.count }

func (m *mockCart) Clear(ctx context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	m.total = decimal.Zero
	m.count = 0
	return nil
}

type mockPanel struct {
	closed bool
}

func (m *mockPanel) ClosePanel() { m.closed = true }

func TestConfirm_ClearsCartAndClosesPanel(t *testing.T) {
	cart := &mockCart{total: decimal.RequireFromString("25.50"), count: 3}
	panel := &mockPanel{}

	result, err := NewService(nil).Confirm(context.Background(), cart, panel)
	require.NoError(t, err)

	require.True(t, cart.cleared)
	require.True(t, panel.closed)
	require.Equal(t, "25.50", result.Total.StringFixed(2))
	require.Equal(t, 3, result.ItemCount)
	require.Equal(t, RedirectHome, result.Redirect)
	require.Equal(t, domnotice.KindCheckout, result.Notice.Kind)
	require.Equal(t, "Purchase completed", result.Notice.Text)
}

func TestConfirm_EmptyCartIsAllowed(t *testing.T) {
	cart := &mockCart{}

	result, err := NewService(nil).Confirm(context.Background(), cart, nil)
	require.NoError(t, err)
	require.True(t, cart.cleared)
	require.True(t, result.Total.IsZero())
}

func TestConfirm_ClearErrorKeepsPanelOpen(t *testing.T) {
	cart := &mockCart{clearErr: errors.New("storage down")}
	panel := &mockPanel{}

	result, err := NewService(nil).Confirm(context.Background(), cart, panel)
	require.Error(t, err)
	require.Nil(t, result)
	require.False(t, panel.closed)
}
