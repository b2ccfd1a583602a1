package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("invalid product")

// ShippingFacet marks a product as shippable.
type ShippingFacet struct {
	WeightKg decimal.Decimal
}

// Product is a catalog item. Expiry and shipping are independent optional
// facets; a product may carry either, both or neither.
type Product struct {
	name      string
	unitPrice decimal.Decimal
	quantity  int
	expiry    *time.Time
	shipping  *ShippingFacet
}

type ProductOption func(*Product)

// WithExpiry makes the product expire after t.
func WithExpiry(t time.Time) ProductOption {
	return func(p *Product) { p.expiry = &t }
}

// WithWeight makes the product shippable with the given unit weight in kg.
func WithWeight(kg decimal.Decimal) ProductOption {
	return func(p *Product) { p.shipping = &ShippingFacet{WeightKg: kg} }
}

func NewProduct(name string, unitPrice decimal.Decimal, quantity int, opts ...ProductOption) (*Product, error) {
	p := &Product{name: name, unitPrice: unitPrice, quantity: quantity}
	for _, opt := range opts {
		opt(p)
	}
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case unitPrice.IsNegative():
		return nil, fmt.Errorf("%w: %s: negative price %s", ErrInvalidProduct, name, unitPrice)
	case quantity < 0:
		return nil, fmt.Errorf("%w: %s: negative quantity %d", ErrInvalidProduct, name, quantity)
	case p.shipping != nil && !p.shipping.WeightKg.IsPositive():
		return nil, fmt.Errorf("%w: %s: weight must be positive, got %s", ErrInvalidProduct, name, p.shipping.WeightKg)
	}
	return p, nil
}

func (p *Product) Name() string               { return p.name }
func (p *Product) UnitPrice() decimal.Decimal { return p.unitPrice }
func (p *Product) Quantity() int              { return p.quantity }

// Expiry reports the expiry timestamp, if the product has one.
func (p *Product) Expiry() (time.Time, bool) {
	if p.expiry == nil {
		return time.Time{}, false
	}
	return *p.expiry, true
}

// Shipping returns the shipping facet or nil.
func (p *Product) Shipping() *ShippingFacet { return p.shipping }

func (p *Product) IsExpired() bool { return p.IsExpiredAt(time.Now()) }

func (p *Product) IsExpiredAt(now time.Time) bool {
	return p.expiry != nil && now.After(*p.expiry)
}

func (p *Product) IsShippable() bool { return p.shipping != nil }

// Weight is the unit weight in kg. Callers must check IsShippable first.
func (p *Product) Weight() decimal.Decimal {
	if p.shipping == nil {
		panic("store: Weight called on non-shippable product " + p.name)
	}
	return p.shipping.WeightKg
}

// ReduceQuantity decrements stock. Bounds are checked by Checkout, not here.
func (p *Product) ReduceQuantity(amount int) {
	p.quantity -= amount
}
