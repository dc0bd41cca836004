package icounterrepo

import "context"

// ICounterRepository hands out order sequence numbers. Next is an atomic
// fetch-and-add; two concurrent callers can never observe the same value.
type ICounterRepository interface {
	Next(ctx context.Context) (int64, error)
}
