package store

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindEmptyCart
	KindProductExpired
	KindInsufficientStock
	KindInsufficientFunds
	KindInvalidQuantity
	KindUnknownProduct
)

func (k Kind) String() string {
	switch k {
	case KindEmptyCart:
		return "EMPTY_CART"
	case KindProductExpired:
		return "PRODUCT_EXPIRED"
	case KindInsufficientStock:
		return "INSUFFICIENT_STOCK"
	case KindInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	case KindInvalidQuantity:
		return "INVALID_QUANTITY"
	case KindUnknownProduct:
		return "UNKNOWN_PRODUCT"
	default:
		return "UNKNOWN"
	}
}

// Error is the failure value of cart and checkout operations. Only the
// fields relevant to Kind are set.
type Error struct {
	Kind      Kind
	Product   string
	Requested int
	Available int
	Balance   decimal.Decimal
	Required  decimal.Decimal
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrEmptyCart         = &Error{Kind: KindEmptyCart}
	ErrProductExpired    = &Error{Kind: KindProductExpired}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds}
	ErrInvalidQuantity   = &Error{Kind: KindInvalidQuantity}
	ErrUnknownProduct    = &Error{Kind: KindUnknownProduct}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyCart:
		return "cart is empty"
	case KindProductExpired:
		return e.Product + " is expired"
	case KindInsufficientStock:
		return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Product, e.Requested, e.Available)
	case KindInsufficientFunds:
		return fmt.Sprintf("customer balance is insufficient: balance %s, required %s",
			e.Balance.StringFixed(2), e.Required.StringFixed(2))
	case KindInvalidQuantity:
		return fmt.Sprintf("quantity must be positive for %s, got %d", e.Product, e.Requested)
	case KindUnknownProduct:
		return "unknown product " + e.Product
	default:
		return "checkout error"
	}
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the Kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
