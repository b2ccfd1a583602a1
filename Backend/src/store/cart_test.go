package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockedCart(t *testing.T, stock int) (*Cart, ProductID) {
	t.Helper()
	cat := NewCatalog()
	p, err := NewProduct("Biscuits", dec("150"), stock, WithWeight(dec("0.7")))
	require.NoError(t, err)
	id := cat.Add(p)
	return NewCart(cat), id
}

func TestCart_AddWithinStock(t *testing.T) {
	cart, id := newStockedCart(t, 5)
	require.NoError(t, cart.Add(id, 5))
	assert.False(t, cart.IsEmpty())
	assert.Equal(t, []CartLine{{Product: id, Quantity: 5}}, cart.Lines())
}

func TestCart_AddOverStockLeavesCartUnchanged(t *testing.T) {
	cart, id := newStockedCart(t, 5)
	require.NoError(t, cart.Add(id, 2))

	err := cart.Add(id, 6)
	require.ErrorIs(t, err, ErrInsufficientStock)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Biscuits", serr.Product)
	assert.Equal(t, 6, serr.Requested)
	assert.Equal(t, 5, serr.Available)
	assert.Equal(t, 1, cart.Len())
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	cart, id := newStockedCart(t, 5)
	assert.ErrorIs(t, cart.Add(id, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.Add(id, -1), ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCart_AddUnknownProduct(t *testing.T) {
	cart, _ := newStockedCart(t, 5)
	assert.ErrorIs(t, cart.Add(ProductID(42), 1), ErrUnknownProduct)
	assert.ErrorIs(t, cart.AddByName("Caviar", 1), ErrUnknownProduct)
}

func TestCart_AddByNameKeepsInsertionOrder(t *testing.T) {
	cat := NewCatalog()
	for _, n := range []string{"A", "B", "C"} {
		p, err := NewProduct(n, dec("1"), 10)
		require.NoError(t, err)
		cat.Add(p)
	}
	cart := NewCart(cat)
	require.NoError(t, cart.AddByName("C", 1))
	require.NoError(t, cart.AddByName("A", 2))
	require.NoError(t, cart.AddByName("B", 3))

	idA, _ := cat.Find("A")
	idB, _ := cat.Find("B")
	idC, _ := cat.Find("C")
	assert.Equal(t, []CartLine{{idC, 1}, {idA, 2}, {idB, 3}}, cart.Lines())
}

func TestCart_RemoveAndClear(t *testing.T) {
	cart, id := newStockedCart(t, 5)
	require.NoError(t, cart.Add(id, 1))
	require.NoError(t, cart.Add(id, 1))

	assert.True(t, cart.Remove(id))
	assert.True(t, cart.IsEmpty())
	assert.False(t, cart.Remove(id))

	require.NoError(t, cart.Add(id, 1))
	cart.Clear()
	assert.True(t, cart.IsEmpty())
}
