package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ahinestrog/possale/Backend/src/store"
)

func main() {
	// Logger a stderr: stdout queda para el recibo
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// LoadConfig fija el nivel antes de loguear la config
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	cfg, err := LoadConfig(".env")
	must(err)

	opts, err := parseFlags(os.Args[1:], cfg)
	must(err)

	var ledger Ledger
	if cfg.DBPath != "" {
		repo, err := NewRepository(cfg.DBDriver, cfg.DBPath, cfg.ReceiptCacheSize)
		must(err)
		defer repo.Close()
		ledger = repo
		log.Info().Str("driver", cfg.DBDriver).Str("db", cfg.DBPath).Msg("receipt ledger ready")
	}

	var events Publisher
	if cfg.RabbitURL != "" {
		rb, err := NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ not available, continuing without events")
		} else {
			defer rb.Close()
			events = rb
		}
	}

	metrics := NewMetrics()
	svc := NewCheckoutService(os.Stdout, ledger, events, metrics)

	if err := run(context.Background(), svc, opts); err != nil {
		if opts.History || opts.ReceiptID != uuid.Nil {
			fmt.Fprintf(os.Stderr, "Ledger read failed: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Checkout failed: %v\n", err)
		}
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn().Err(err).Str("path", cfg.MetricsTextfile).Msg("write metrics failed")
		}
	}
}

// run either reads the ledger (--receipt, --history) or builds the catalog,
// customer and cart described by opts and checks the cart out once.
func run(ctx context.Context, svc *CheckoutService, opts *Options) error {
	switch {
	case opts.ReceiptID != uuid.Nil:
		return svc.ShowReceipt(ctx, opts.ReceiptID)
	case opts.History:
		n, err := svc.History(ctx, opts.CustomerName)
		if err == nil && n == 0 {
			fmt.Fprintf(svc.out, "No receipts for %s\n", opts.CustomerName)
		}
		return err
	}

	catalog, err := openCatalog(opts.CatalogPath, svc.now())
	if err != nil {
		return err
	}
	log.Debug().Int("products", catalog.Len()).Msg("catalog loaded")

	customer := store.NewCustomer(opts.CustomerName, opts.Balance)
	cart := store.NewCart(catalog)
	if err := FillCart(cart, opts.Items); err != nil {
		return err
	}
	_, err = svc.Checkout(ctx, customer, cart)
	return err
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
