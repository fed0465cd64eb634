package ratelimit

import "time"

// Limiter is a rate limiter
type Limiter interface {
	Allow(key string) bool
}

// retryAdvisor is implemented by limiters that know when a rejected key may retry.
type retryAdvisor interface {
	RetryAfter(key string) time.Duration
}

// NopLimiter lets every request through; it backs a disabled rate limit.
type NopLimiter struct{}

// Allow always returns true
func (NopLimiter) Allow(string) bool { return true }
