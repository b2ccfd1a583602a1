package store

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// charged per kilogram of shippable goods
var shippingRatePerKg = decimal.NewFromInt(10)

type ShipmentLine struct {
	Description string
	WeightKg    decimal.Decimal
}

type ShipmentNotice struct {
	Lines []ShipmentLine
}

func (n ShipmentNotice) IsEmpty() bool { return len(n.Lines) == 0 }

func (n ShipmentNotice) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, l := range n.Lines {
		total = total.Add(l.WeightKg)
	}
	return total
}

// shipmentLine describes qty units of a product. Grams are truncated, not
// rounded.
func shipmentLine(qty int, name string, unitKg decimal.Decimal) ShipmentLine {
	w := unitKg.Mul(decimal.NewFromInt(int64(qty)))
	grams := w.Mul(decimal.NewFromInt(1000)).IntPart()
	return ShipmentLine{
		Description: fmt.Sprintf("%dx %s    %dg", qty, name, grams),
		WeightKg:    w,
	}
}

func shippingCost(weightKg decimal.Decimal) decimal.Decimal {
	return weightKg.Mul(shippingRatePerKg)
}
