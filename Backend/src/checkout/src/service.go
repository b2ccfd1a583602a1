package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ahinestrog/possale/Backend/src/store"
)

var ErrNoLedger = errors.New("receipt ledger disabled, set CHECKOUT_DB_PATH")

type Ledger interface {
	SaveReceipt(ctx context.Context, r *store.Receipt) error
	GetReceipt(ctx context.Context, id uuid.UUID) (*store.Receipt, error)
	ListReceipts(ctx context.Context, customer string) ([]*store.Receipt, error)
}

type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

// CheckoutService runs store.Checkout and fans the outcome out to the
// report writer, the ledger, the event bus and the metrics. Ledger and
// publisher are optional; their failures are logged and never undo a
// settled checkout.
type CheckoutService struct {
	out     io.Writer
	ledger  Ledger
	events  Publisher
	metrics *Metrics
	now     func() time.Time
}

func NewCheckoutService(out io.Writer, ledger Ledger, events Publisher, metrics *Metrics) *CheckoutService {
	return &CheckoutService{out: out, ledger: ledger, events: events, metrics: metrics, now: time.Now}
}

func (s *CheckoutService) Checkout(ctx context.Context, customer *store.Customer, cart *store.Cart) (*store.Receipt, error) {
	r, err := store.CheckoutAt(s.now(), customer, cart)
	if err != nil {
		if s.metrics != nil {
			s.metrics.observeFailure(err)
		}
		s.publish(ctx, RKCheckoutFailed, failedPayload(customer.Name(), err))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.observeSuccess(r)
	}
	if err := store.WriteReport(s.out, r); err != nil {
		log.Warn().Err(err).Str("receipt", r.ID.String()).Msg("[checkout] write report failed")
	}
	if s.ledger != nil {
		if err := s.ledger.SaveReceipt(ctx, r); err != nil {
			log.Warn().Err(err).Str("receipt", r.ID.String()).Msg("[checkout] ledger save failed")
		}
	}
	s.publish(ctx, RKCheckoutCompleted, completedPayload(r))

	log.Info().
		Str("receipt", r.ID.String()).
		Str("customer", r.Customer).
		Str("total", r.Total.StringFixed(2)).
		Msg("[checkout] settled")
	return r, nil
}

// ShowReceipt reprints one stored receipt.
func (s *CheckoutService) ShowReceipt(ctx context.Context, id uuid.UUID) error {
	if s.ledger == nil {
		return ErrNoLedger
	}
	r, err := s.ledger.GetReceipt(ctx, id)
	if err != nil {
		return fmt.Errorf("receipt %s: %w", id, err)
	}
	return store.WriteReport(s.out, r)
}

// History reprints every stored receipt of a customer, oldest first, and
// returns how many there were.
func (s *CheckoutService) History(ctx context.Context, customer string) (int, error) {
	if s.ledger == nil {
		return 0, ErrNoLedger
	}
	receipts, err := s.ledger.ListReceipts(ctx, customer)
	if err != nil {
		return 0, err
	}
	for _, r := range receipts {
		if err := store.WriteReport(s.out, r); err != nil {
			return 0, err
		}
	}
	log.Debug().Str("customer", customer).Int("receipts", len(receipts)).Msg("[checkout] history")
	return len(receipts), nil
}

// FillCart adds the requested items by name, stopping at the first failure.
func FillCart(cart *store.Cart, items []itemRequest) error {
	for _, it := range items {
		if err := cart.AddByName(it.Name, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *CheckoutService) publish(ctx context.Context, key string, v any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(ctx, key, v); err != nil {
		log.Warn().Err(err).Str("rk", key).Msg("[checkout] publish failed")
	}
}
