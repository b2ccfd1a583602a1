package store

import "github.com/shopspring/decimal"

type Customer struct {
	name    string
	balance decimal.Decimal
}

func NewCustomer(name string, balance decimal.Decimal) *Customer {
	return &Customer{name: name, balance: balance}
}

func (c *Customer) Name() string             { return c.name }
func (c *Customer) Balance() decimal.Decimal { return c.balance }

// Pay deducts amount without checking funds; Checkout does that first.
func (c *Customer) Pay(amount decimal.Decimal) {
	c.balance = c.balance.Sub(amount)
}
