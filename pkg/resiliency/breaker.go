package resiliency

import (
	"errors"
	"sync"
	"time"
)

type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// ErrCircuitOpen возвращается без обращения к сети, пока breaker разомкнут.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type BreakerConfig struct {
	// Доля неудач в скользящем окне, после которой цепь размыкается.
	FailureRatio float64
	// Минимум вызовов в окне, до которого статистика не учитывается.
	MinimumThroughput int
	SamplingDuration  time.Duration
	BreakDuration     time.Duration
}

func (c *BreakerConfig) applyDefaults() {
	if c.FailureRatio <= 0 || c.FailureRatio > 1 {
		c.FailureRatio = 0.5
	}
	if c.MinimumThroughput <= 0 {
		c.MinimumThroughput = 5
	}
	if c.SamplingDuration <= 0 {
		c.SamplingDuration = 30 * time.Second
	}
	if c.BreakDuration <= 0 {
		c.BreakDuration = 15 * time.Second
	}
}

type bucket struct {
	start     time.Time
	successes int
	failures  int
}

// CircuitBreaker считает успехи и неудачи в скользящем окне из бакетов.
type CircuitBreaker struct {
	cfg BreakerConfig

	mu       sync.Mutex
	state    BreakerState
	openedAt time.Time
	buckets  []bucket
	now      func() time.Time
}

const bucketCount = 10

func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	cfg.applyDefaults()
	return &CircuitBreaker{
		cfg:     cfg,
		state:   StateClosed,
		buckets: make([]bucket, 0, bucketCount),
		now:     time.Now,
	}
}

// Allow сообщает, можно ли выполнять вызов в текущем состоянии.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) >= cb.cfg.BreakDuration {
			// Пробный вызов после паузы.
			cb.state = StateHalfOpen
			return true
		}
		return false
	default:
		return true
	}
}

func (cb *CircuitBreaker) Success() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen {
		cb.state = StateClosed
		cb.buckets = cb.buckets[:0]
		return
	}

	b := cb.currentBucket()
	b.successes++
}

func (cb *CircuitBreaker) Failure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen {
		cb.trip()
		return
	}

	b := cb.currentBucket()
	b.failures++

	successes, failures := cb.windowCounts()
	total := successes + failures
	if total < cb.cfg.MinimumThroughput {
		return
	}
	if float64(failures)/float64(total) >= cb.cfg.FailureRatio {
		cb.trip()
	}
}

func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) trip() {
	cb.state = StateOpen
	cb.openedAt = cb.now()
	cb.buckets = cb.buckets[:0]
}

func (cb *CircuitBreaker) currentBucket() *bucket {
	now := cb.now()
	span := cb.cfg.SamplingDuration / bucketCount

	cb.evictExpired(now)

	if n := len(cb.buckets); n > 0 && now.Sub(cb.buckets[n-1].start) < span {
		return &cb.buckets[n-1]
	}

	cb.buckets = append(cb.buckets, bucket{start: now})
	return &cb.buckets[len(cb.buckets)-1]
}

func (cb *CircuitBreaker) windowCounts() (successes, failures int) {
	cb.evictExpired(cb.now())
	for _, b := range cb.buckets {
		successes += b.successes
		failures += b.failures
	}
	return successes, failures
}

func (cb *CircuitBreaker) evictExpired(now time.Time) {
	cutoff := now.Add(-cb.cfg.SamplingDuration)
	idx := 0
	for idx < len(cb.buckets) && cb.buckets[idx].start.Before(cutoff) {
		idx++
	}
	if idx > 0 {
		cb.buckets = append(cb.buckets[:0], cb.buckets[idx:]...)
	}
}
