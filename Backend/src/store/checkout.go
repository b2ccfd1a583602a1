package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func Checkout(customer *Customer, cart *Cart) (*Receipt, error) {
	return CheckoutAt(time.Now(), customer, cart)
}

// CheckoutAt validates every line, prices the cart and settles it as of
// now. Either every line's stock is reduced and the customer pays the full
// total, or nothing changes and the first failure is returned. The cart is
// cleared only on success.
func CheckoutAt(now time.Time, customer *Customer, cart *Cart) (*Receipt, error) {
	r, err := settle(now, customer, cart)
	if err != nil {
		log.Debug().
			Err(err).
			Str("customer", customer.Name()).
			Str("kind", KindOf(err).String()).
			Msg("checkout rejected")
		return nil, err
	}
	log.Debug().
		Str("receipt", r.ID.String()).
		Str("customer", r.Customer).
		Str("total", r.Total.StringFixed(2)).
		Int("lines", len(r.Lines)).
		Msg("checkout settled")
	return r, nil
}

func settle(now time.Time, customer *Customer, cart *Cart) (*Receipt, error) {
	if cart.IsEmpty() {
		return nil, &Error{Kind: KindEmptyCart}
	}

	cat := cart.catalog
	cat.mu.Lock()
	defer cat.mu.Unlock()

	r := &Receipt{Customer: customer.Name(), IssuedAt: now}
	subtotal, shipping := decimal.Zero, decimal.Zero
	products := make([]*Product, len(cart.lines))
	// units of each product already claimed by earlier lines
	claimed := make(map[ProductID]int, len(cart.lines))

	for i, line := range cart.lines {
		p, err := cat.lookup(line.Product)
		if err != nil {
			return nil, err
		}
		if p.IsExpiredAt(now) {
			return nil, &Error{Kind: KindProductExpired, Product: p.Name()}
		}
		if line.Quantity+claimed[line.Product] > p.Quantity() {
			return nil, &Error{
				Kind:      KindInsufficientStock,
				Product:   p.Name(),
				Requested: line.Quantity,
				Available: p.Quantity() - claimed[line.Product],
			}
		}
		claimed[line.Product] += line.Quantity
		products[i] = p

		qty := decimal.NewFromInt(int64(line.Quantity))
		lineTotal := p.UnitPrice().Mul(qty)
		subtotal = subtotal.Add(lineTotal)
		r.Lines = append(r.Lines, ReceiptLine{
			Quantity:  line.Quantity,
			Name:      p.Name(),
			UnitPrice: p.UnitPrice(),
			LineTotal: lineTotal,
		})

		if s := p.Shipping(); s != nil {
			sl := shipmentLine(line.Quantity, p.Name(), s.WeightKg)
			r.Shipment.Lines = append(r.Shipment.Lines, sl)
			shipping = shipping.Add(shippingCost(sl.WeightKg))
		}
	}

	total := subtotal.Add(shipping)
	if customer.Balance().LessThan(total) {
		return nil, &Error{Kind: KindInsufficientFunds, Balance: customer.Balance(), Required: total}
	}

	for i, line := range cart.lines {
		products[i].ReduceQuantity(line.Quantity)
	}
	customer.Pay(total)
	cart.Clear()

	r.ID = uuid.New()
	r.Subtotal = subtotal
	r.Shipping = shipping
	r.Total = total
	r.BalanceAfter = customer.Balance()
	return r, nil
}
