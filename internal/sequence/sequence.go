// Package sequence issues the sequential invoice and service-job numbers
// backed by per-domain counter documents.
package sequence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"go-shop-manager/internal/store"
)

// Counter domains and their starting numbers.
const (
	InvoiceCounter  = "invoiceCounter"
	InvoiceStart    = 10001
	ServiceCounter  = "serviceJobCounter"
	ServiceJobStart = 1001
)

// AtomicRunner is the single-document transaction primitive the generator
// needs from the store.
type AtomicRunner interface {
	RunAtomic(ctx context.Context, collection, id string, fn store.AtomicFn) (bson.M, error)
}

// NextNumber atomically issues the next number for a counter domain. A fresh
// counter is initialized to initialValue and that value is returned;
// otherwise the stored value is incremented by one. Two concurrent callers
// never receive the same number: the store retries the update on conflicting
// writes, and a store.ErrTransientStore comes back if it cannot commit.
func NextNumber(ctx context.Context, s AtomicRunner, counterID string, initialValue int) (int, error) {
	var issued int
	_, err := s.RunAtomic(ctx, "counters", counterID, func(current bson.M, exists bool) (bson.M, error) {
		if !exists {
			issued = initialValue
			return bson.M{"current": issued}, nil
		}
		issued = counterValue(current["current"], initialValue) + 1
		return bson.M{"current": issued}, nil
	})
	if err != nil {
		return 0, fmt.Errorf("issue %s: %w", counterID, err)
	}
	return issued, nil
}

// Format renders an issued number the way invoices display it.
func Format(n int) string {
	return fmt.Sprintf("%05d", n)
}

// counterValue reads the stored value leniently: the driver may hand back
// any BSON numeric type, and a missing or zero field falls back to the
// domain's starting value.
func counterValue(v any, fallback int) int {
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int32:
		n = int(x)
	case int64:
		n = int(x)
	case float64:
		n = int(x)
	}
	if n == 0 {
		return fallback
	}
	return n
}
