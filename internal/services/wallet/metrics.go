package wallet

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Compensation failures are still logged; they must never disappear.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransaction(string, decimal.Decimal) {}

func (n *NoopMetricsCollector) RecordError(string, string) {}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}

func (n *NoopMetricsCollector) AlertCompensationFailure(userID uint, reference string, err error) {
	log.Printf("ALERT: compensation failed for user %d reference %s: %v", userID, reference, err)
}
