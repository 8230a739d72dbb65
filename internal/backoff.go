package internal

import (
	"math"
	"math/rand/v2"
	"time"
)

// BackoffConfig parameterizes a jittered exponential backoff sequence.
//
// worker.Runtime uses this to jitter its poll interval rather than to
// schedule task retries: Tianshu's retry model has no backoff of its own —
// a stale task becomes immediately eligible again once
// Maintainer.ResetStale resets it — so the only place exponential backoff
// earns its keep is spreading out concurrent pollers to avoid a
// thundering herd against the Task Store.
type BackoffConfig struct {
	MaxRetries          uint32
	InitialInterval     time.Duration
	MaxInterval         time.Duration
	Multiplier          float64
	RandomizationFactor float64
}

// BackoffCounter computes successive backoff durations for a BackoffConfig.
type BackoffCounter struct {
	BackoffConfig
}

// NewBackoffCounter builds a BackoffCounter from cfg.
func NewBackoffCounter(cfg BackoffConfig) *BackoffCounter {
	return &BackoffCounter{BackoffConfig: cfg}
}

// Next returns the backoff duration for attempt (1-based), or false if
// MaxRetries is set and exceeded.
func (bc *BackoffCounter) Next(attempt uint32) (time.Duration, bool) {
	if bc.MaxRetries > 0 && attempt > bc.MaxRetries {
		return 0, false
	}
	exp := float64(bc.InitialInterval) * math.Pow(bc.Multiplier, float64(attempt-1))
	if exp > float64(bc.MaxInterval) {
		exp = float64(bc.MaxInterval)
	}
	if bc.RandomizationFactor > 0 {
		delta := bc.RandomizationFactor * exp
		minExp := exp - delta
		maxExp := exp + delta
		exp = minExp + rand.Float64()*(maxExp-minExp)
	}
	return time.Duration(exp), true
}
