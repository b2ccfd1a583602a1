package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

type itemRequest struct {
	Name     string
	Quantity int
}

// Options is what one register run needs, after flags override Config.
type Options struct {
	CustomerName string
	Balance      decimal.Decimal
	CatalogPath  string
	Items        []itemRequest
	// History and ReceiptID switch the run from checkout to ledger reads.
	History   bool
	ReceiptID uuid.UUID
}

// El carrito por defecto es el del escenario de referencia.
var defaultItems = []itemRequest{
	{Name: "Cheese", Quantity: 1},
	{Name: "Biscuits", Quantity: 1},
	{Name: "Scratch Card", Quantity: 1},
}

func parseFlags(args []string, cfg *Config) (*Options, error) {
	fs := pflag.NewFlagSet("checkout", pflag.ContinueOnError)
	customer := fs.String("customer", cfg.CustomerName, "customer name")
	balance := fs.String("balance", cfg.CustomerBalance, "customer starting balance")
	catalog := fs.String("catalog", cfg.CatalogPath, "YAML catalog file (empty for the demo catalog)")
	items := fs.StringArrayP("item", "i", nil, "cart line as NAME=QTY, repeatable")
	history := fs.Bool("history", false, "print the customer's stored receipts instead of checking out")
	receipt := fs.String("receipt", "", "print one stored receipt by ID instead of checking out")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	bal, err := decimal.NewFromString(*balance)
	if err != nil {
		return nil, fmt.Errorf("balance %q: %w", *balance, err)
	}
	opts := &Options{CustomerName: *customer, Balance: bal, CatalogPath: *catalog, History: *history}
	if *receipt != "" {
		if opts.ReceiptID, err = uuid.Parse(*receipt); err != nil {
			return nil, fmt.Errorf("receipt %q: %w", *receipt, err)
		}
	}
	for _, raw := range *items {
		it, err := parseItem(raw)
		if err != nil {
			return nil, err
		}
		opts.Items = append(opts.Items, it)
	}
	if len(opts.Items) == 0 {
		opts.Items = append(opts.Items, defaultItems...)
	}
	return opts, nil
}

func parseItem(raw string) (itemRequest, error) {
	name, qty, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return itemRequest{}, fmt.Errorf("item %q: want NAME=QTY", raw)
	}
	n, err := strconv.Atoi(strings.TrimSpace(qty))
	if err != nil {
		return itemRequest{}, fmt.Errorf("item %q: quantity: %w", raw, err)
	}
	return itemRequest{Name: name, Quantity: n}, nil
}
