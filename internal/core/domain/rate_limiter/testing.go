package ratelimiter

import (
	"context"
	"sync"
)

type FakeRateLimiter struct {
	DoNotAllow bool
	Keys       []string
	lock       sync.Mutex
}

func NewFakeRateLimiter(doNotAllow bool) *FakeRateLimiter {
	return &FakeRateLimiter{DoNotAllow: doNotAllow}
}

func (r *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Keys = append(r.Keys, key)
	if r.DoNotAllow {
		return NotAllowed()
	}
	return Allowed()
}
