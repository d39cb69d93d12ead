package mysql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domproduct "example.com/storefront/internal/domain/product"
)

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = f.values[i].(int64)
		case *string:
			*p = f.values[i].(string)
		case *float64:
			*p = f.values[i].(float64)
		}
	}
	return nil
}

func TestScanProduct(t *testing.T) {
	p, err := scanProduct(fakeRow{values: []any{int64(2), "Producto 2", "1000.00", "p2.png", "electronicos", 4.5}})

	require.NoError(t, err)
	require.Equal(t, int64(2), p.ID)
	require.Equal(t, "1000.00", p.Price.StringFixed(2))
	require.Equal(t, 4.5, p.Rating)
}

func TestScanProduct_NegativePrice(t *testing.T) {
	_, err := scanProduct(fakeRow{values: []any{int64(2), "Producto 2", "-1", "p2.png", "electronicos", 4.5}})
	require.ErrorIs(t, err, domproduct.ErrInvalidPrice)
}

func TestScanProduct_ScanError(t *testing.T) {
	_, err := scanProduct(fakeRow{err: errors.New("boom")})
	require.EqualError(t, err, "boom")
}
