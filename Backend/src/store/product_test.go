package store

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewProduct_Facets(t *testing.T) {
	expiry := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	plain, err := NewProduct("Scratch Card", dec("50"), 100)
	require.NoError(t, err)
	assert.False(t, plain.IsShippable())
	assert.Nil(t, plain.Shipping())
	_, ok := plain.Expiry()
	assert.False(t, ok)

	both, err := NewProduct("Cheese", dec("100"), 10, WithExpiry(expiry), WithWeight(dec("0.2")))
	require.NoError(t, err)
	assert.True(t, both.IsShippable())
	assert.True(t, both.Weight().Equal(dec("0.2")))
	got, ok := both.Expiry()
	assert.True(t, ok)
	assert.Equal(t, expiry, got)
}

func TestNewProduct_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		pname string
		price string
		qty   int
		opts  []ProductOption
	}{
		{"empty name", "", "1", 1, nil},
		{"negative price", "X", "-1", 1, nil},
		{"negative quantity", "X", "1", -1, nil},
		{"zero weight", "X", "1", 1, []ProductOption{WithWeight(decimal.Zero)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProduct(tc.pname, dec(tc.price), tc.qty, tc.opts...)
			assert.True(t, errors.Is(err, ErrInvalidProduct), "got %v", err)
		})
	}
}

func TestProduct_IsExpiredAt(t *testing.T) {
	expiry := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	p, err := NewProduct("Milk", dec("3"), 1, WithExpiry(expiry))
	require.NoError(t, err)

	assert.False(t, p.IsExpiredAt(expiry.Add(-time.Second)))
	assert.False(t, p.IsExpiredAt(expiry), "expiry instant itself is still sellable")
	assert.True(t, p.IsExpiredAt(expiry.Add(time.Second)))

	never, err := NewProduct("Salt", dec("1"), 1)
	require.NoError(t, err)
	assert.False(t, never.IsExpiredAt(time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, never.IsExpired())
}

func TestProduct_WeightPanicsWhenNotShippable(t *testing.T) {
	p, err := NewProduct("Scratch Card", dec("50"), 1)
	require.NoError(t, err)
	assert.Panics(t, func() { p.Weight() })
}

func TestProduct_ReduceQuantity(t *testing.T) {
	p, err := NewProduct("TV", dec("5000"), 3, WithWeight(dec("10")))
	require.NoError(t, err)
	p.ReduceQuantity(2)
	assert.Equal(t, 1, p.Quantity())
}

func TestCatalog_HandlesAndLookup(t *testing.T) {
	cat := NewCatalog()
	a, _ := NewProduct("A", dec("1"), 1)
	b, _ := NewProduct("B", dec("2"), 2)
	idA := cat.Add(a)
	idB := cat.Add(b)

	assert.Equal(t, 2, cat.Len())
	got, err := cat.Product(idB)
	require.NoError(t, err)
	assert.Same(t, b, got)

	id, ok := cat.Find("A")
	assert.True(t, ok)
	assert.Equal(t, idA, id)
	_, ok = cat.Find("Z")
	assert.False(t, ok)

	_, err = cat.Product(ProductID(7))
	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Equal(t, []*Product{a, b}, cat.Products())
}

func TestCatalog_Stock(t *testing.T) {
	cat := NewCatalog()
	p, _ := NewProduct("A", dec("1"), 5)
	id := cat.Add(p)

	n, err := cat.Stock(id)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	p.ReduceQuantity(2)
	n, _ = cat.Stock(id)
	assert.Equal(t, 3, n)

	_, err = cat.Stock(ProductID(-1))
	assert.ErrorIs(t, err, ErrUnknownProduct)
}
