package main

import (
	"errors"
	"time"

	"github.com/ahinestrog/possale/Backend/src/store"
)

// Eventos publicados por el registro
const (
	RKCheckoutCompleted = "checkout.completed"
	RKCheckoutFailed    = "checkout.failed"
)

type CheckoutCompletedPayload struct {
	ReceiptID    string            `json:"receipt_id"`
	Customer     string            `json:"customer"`
	Items        []CheckoutItemEvt `json:"items"`
	Subtotal     string            `json:"subtotal"`
	Shipping     string            `json:"shipping"`
	Total        string            `json:"total"`
	WeightKg     string            `json:"weight_kg"`
	BalanceAfter string            `json:"balance_after"`
	IssuedAt     time.Time         `json:"issued_at"`
}

type CheckoutItemEvt struct {
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type CheckoutFailedPayload struct {
	Customer string `json:"customer"`
	Kind     string `json:"kind"`
	Product  string `json:"product,omitempty"`
	Reason   string `json:"reason"`
}

func completedPayload(r *store.Receipt) CheckoutCompletedPayload {
	p := CheckoutCompletedPayload{
		ReceiptID:    r.ID.String(),
		Customer:     r.Customer,
		Subtotal:     r.Subtotal.StringFixed(2),
		Shipping:     r.Shipping.StringFixed(2),
		Total:        r.Total.StringFixed(2),
		WeightKg:     r.Shipment.TotalWeight().String(),
		BalanceAfter: r.BalanceAfter.StringFixed(2),
		IssuedAt:     r.IssuedAt.UTC(),
	}
	for _, l := range r.Lines {
		p.Items = append(p.Items, CheckoutItemEvt{
			Name:      l.Name,
			Qty:       l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			LineTotal: l.LineTotal.StringFixed(2),
		})
	}
	return p
}

func failedPayload(customer string, err error) CheckoutFailedPayload {
	p := CheckoutFailedPayload{
		Customer: customer,
		Kind:     store.KindOf(err).String(),
		Reason:   err.Error(),
	}
	var serr *store.Error
	if errors.As(err, &serr) {
		p.Product = serr.Product
	}
	return p
}
