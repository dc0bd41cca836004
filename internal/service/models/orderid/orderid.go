// Package orderid formats and parses the human-readable order identifiers
// exposed to customers and dashboards (#A0001, #A0042, #A10000). Zero-padding
// guarantees four digits minimum; larger numbers extend the width naturally.
package orderid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const prefix = "#A"

var ErrMalformedID = errors.New("malformed order id")

// Format renders the n-th order identifier.
func Format(n int64) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}

// Parse extracts the sequence number from a human-readable order ID.
// A stored ID that does not parse is a data-integrity fault, never a reason
// to silently restart the sequence.
func Parse(id string) (int64, error) {
	if !strings.HasPrefix(id, prefix) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, id)
	}
	n, err := strconv.ParseInt(id[len(prefix):], 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, id)
	}
	return n, nil
}
