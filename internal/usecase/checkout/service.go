package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domnotice "example.com/storefront/internal/domain/notice"
)

const (
	RedirectHome  = "/"
	dialogTimeout = 2500 * time.Millisecond
)

type Cart interface {
	Total() decimal.Decimal
	ItemCount() int
	Clear(ctx context.Context) error
}

type Panel interface {
	ClosePanel()
}

type Result struct {
	Total     decimal.Decimal
	ItemCount int
	Notice    domnotice.Notice
	Redirect  string
}

type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Confirm completes a simulated purchase: the cart is cleared, the cart panel
// closed, and the shopper sent back to the home page.
func (s *Service) Confirm(ctx context.Context, cart Cart, panel Panel) (*Result, error) {
	total := cart.Total()
	count := cart.ItemCount()

	if err := cart.Clear(ctx); err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	if panel != nil {
		panel.ClosePanel()
	}

	s.logger.Info("checkout completed",
		zap.String("total", total.StringFixed(2)),
		zap.Int("item_count", count))

	return &Result{
		Total:     total,
		ItemCount: count,
		Notice: domnotice.Notice{
			Kind:  domnotice.KindCheckout,
			Text:  "Purchase completed",
			Timer: dialogTimeout,
		},
		Redirect: RedirectHome,
	}, nil
}
