package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// orderNumberSuffixSpace bounds the random suffix of generated order numbers.
const orderNumberSuffixSpace = 1_000_000

// NewOrderNumber generates a human-readable order number from a time-based
// prefix and a random suffix, e.g. "ORD-20260829154512-042991".
//
// Uniqueness is probabilistic, not guaranteed by construction: two orders
// created in the same second have a 1-in-a-million chance of colliding.
// Callers that persist the number under a unique constraint should tolerate
// a retry.
func NewOrderNumber(now time.Time) string {
	suffix := rand.IntN(orderNumberSuffixSpace) //nolint:gosec // collision tolerance, not secrecy
	return fmt.Sprintf("ORD-%s-%06d", now.UTC().Format("20060102150405"), suffix)
}
