package backoff

import (
	"context"
	"math"
	"math/rand"
	"time"
)

type BackoffStrategy interface {
	GetBackoffDuration(count int, start time.Duration, last time.Duration) time.Duration
}

// Backoff sleeps for growing durations between attempts
type Backoff struct {
	LastDuration time.Duration
	NextDuration time.Duration
	start        time.Duration
	limit        time.Duration
	count        int
	strategy     BackoffStrategy
}

func NewBackoff(strategy BackoffStrategy, start time.Duration, limit time.Duration) *Backoff {
	backoff := Backoff{strategy: strategy, start: start, limit: limit}
	backoff.Reset()
	return &backoff
}

func (b *Backoff) Reset() {
	b.count = 0
	b.LastDuration = 0
	b.NextDuration = b.getNextDuration()
}

// Backoff waits NextDuration, it returns ctx.Err() when ctx ends first
func (b *Backoff) Backoff(ctx context.Context) error {
	timer := time.NewTimer(b.NextDuration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	b.count++
	b.LastDuration = b.NextDuration
	b.NextDuration = b.getNextDuration()
	return nil
}

func (b *Backoff) getNextDuration() time.Duration {
	backoff := b.strategy.GetBackoffDuration(b.count, b.start, b.LastDuration)
	if b.limit > 0 && backoff > b.limit {
		backoff = b.limit
	}
	return backoff
}

type exponential struct{}

func (exponential) GetBackoffDuration(count int, start time.Duration, last time.Duration) time.Duration {
	period := int64(math.Pow(2, float64(count)))
	return time.Duration(period) * start
}

func NewExponential(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(exponential{}, start, limit)
}

type linear struct{}

func (linear) GetBackoffDuration(count int, start time.Duration, last time.Duration) time.Duration {
	return time.Duration(count+1) * start
}

func NewLinear(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(linear{}, start, limit)
}

// jitter is exponential plus up to one start of random delay, so replicas
// started together do not retry in lockstep
type jitter struct {
	rnd *rand.Rand
}

func (j jitter) GetBackoffDuration(count int, start time.Duration, last time.Duration) time.Duration {
	return exponential{}.GetBackoffDuration(count, start, last) + time.Duration(j.rnd.Int63n(int64(start)+1))
}

func NewJitter(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(jitter{rand.New(rand.NewSource(time.Now().UnixNano()))}, start, limit)
}

// Retry calls f up to attempts times, backing off between failures. It
// returns the last error of f, or ctx.Err() if ctx ends while waiting.
func Retry(ctx context.Context, b *Backoff, attempts int, f func(attempt int) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if berr := b.Backoff(ctx); berr != nil {
				return berr
			}
		}
		if err = f(i); err == nil {
			return nil
		}
	}
	return err
}
