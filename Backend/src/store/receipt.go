package store

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReceiptLine struct {
	Quantity  int
	Name      string
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Receipt is the result of a successful checkout.
type Receipt struct {
	ID           uuid.UUID
	Customer     string
	IssuedAt     time.Time
	Lines        []ReceiptLine
	Shipment     ShipmentNotice
	Subtotal     decimal.Decimal
	Shipping     decimal.Decimal
	Total        decimal.Decimal
	BalanceAfter decimal.Decimal
}

// ItemCount is the number of units sold.
func (r *Receipt) ItemCount() int {
	n := 0
	for _, l := range r.Lines {
		n += l.Quantity
	}
	return n
}

// Formato de salida del registro

func (n ShipmentNotice) String() string {
	var b strings.Builder
	b.WriteString("** Shipment notice **\n")
	for _, l := range n.Lines {
		b.WriteString(l.Description)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Total package weight %skg\n\n", n.TotalWeight().StringFixed(1))
	return b.String()
}

func (r *Receipt) String() string {
	var b strings.Builder
	b.WriteString("** Checkout receipt **\n")
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%dx %s    %s\n", l.Quantity, l.Name, l.LineTotal.StringFixed(2))
	}
	b.WriteString("----------------------\n")
	fmt.Fprintf(&b, "Subtotal         %s\n", r.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Shipping         %s\n", r.Shipping.StringFixed(2))
	fmt.Fprintf(&b, "Amount           %s\n\n", r.Total.StringFixed(2))
	return b.String()
}

// WriteReport writes the shipment notice (when anything ships), the
// receipt and the customer's resulting balance.
func WriteReport(w io.Writer, r *Receipt) error {
	var b strings.Builder
	if !r.Shipment.IsEmpty() {
		b.WriteString(r.Shipment.String())
	}
	b.WriteString(r.String())
	fmt.Fprintf(&b, "Customer Balance: %s\n", r.BalanceAfter.StringFixed(2))
	_, err := io.WriteString(w, b.String())
	return err
}
