// Package reconciliation periodically verifies pending transfers
// directly against the processor. Webhooks can be lost; the sweep makes
// sure a pending withdrawal eventually settles either way.
package reconciliation

import (
	"context"
	"log"
	"time"

	"payloow/internal/services/paystack"
	"payloow/internal/services/transaction"
	"payloow/internal/services/webhook"

	"github.com/robfig/cron/v3"
)

// Verifier is the transfer-verification slice of the payment gateway.
type Verifier interface {
	VerifyTransfer(ctx context.Context, reference string) (*paystack.TransferStatus, error)
}

// Config controls the sweep cadence and how long a transfer may stay
// pending before it is checked.
type Config struct {
	Schedule    string        // cron spec, e.g. "*/10 * * * *"
	GracePeriod time.Duration // leave young transfers to the webhook
	Timeout     time.Duration // per-sweep context deadline
}

// Sweeper drives the periodic verification of pending transfers.
type Sweeper struct {
	txns     transaction.Service
	verifier Verifier
	settler  webhook.Service
	config   Config
	cron     *cron.Cron
}

func NewSweeper(txns transaction.Service, verifier Verifier, settler webhook.Service, config Config) *Sweeper {
	if config.Schedule == "" {
		config.Schedule = "*/10 * * * *"
	}
	if config.GracePeriod == 0 {
		config.GracePeriod = 15 * time.Minute
	}
	if config.Timeout == 0 {
		config.Timeout = 2 * time.Minute
	}
	return &Sweeper{
		txns:     txns,
		verifier: verifier,
		settler:  settler,
		config:   config,
		cron:     cron.New(),
	}
}

// Start schedules the sweep. The returned stop function blocks until a
// running sweep finishes.
func (s *Sweeper) Start() (func(), error) {
	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
		defer cancel()
		if err := s.Sweep(ctx); err != nil {
			log.Printf("reconciliation sweep failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	s.cron.Start()
	return func() { <-s.cron.Stop().Done() }, nil
}

// Sweep verifies every pending transfer older than the grace period and
// settles it through the same paths a webhook delivery would take.
func (s *Sweeper) Sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-s.config.GracePeriod)
	pending, err := s.txns.PendingTransfersOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, txn := range pending {
		status, err := s.verifier.VerifyTransfer(ctx, txn.Reference)
		if err != nil {
			// Verification is retried next sweep; an unreachable
			// processor must not flip local state.
			log.Printf("could not verify transfer %s: %v", txn.Reference, err)
			continue
		}

		switch status.Status {
		case "success":
			if err := s.settler.SettleTransferSuccess(ctx, txn.Reference, txn.TransferCode); err != nil {
				log.Printf("failed to settle transfer %s: %v", txn.Reference, err)
			}
		case "failed", "reversed":
			if err := s.settler.SettleTransferFailure(ctx, txn.Reference, txn.TransferCode, status.AmountMinor); err != nil {
				log.Printf("failed to refund transfer %s: %v", txn.Reference, err)
			}
		default:
			// Still in flight processor-side; leave it pending.
		}
	}
	return nil
}
