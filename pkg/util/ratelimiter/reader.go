// Copyright 2022 The xrocket Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ratelimiter

import (
	"errors"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrReadLimitExceeded will be returned by Read method when current rate limit is exceeded.
var ErrReadLimitExceeded = errors.New("ratelimiter: read limit exceeded")

// Reader is a rate limited io.Reader.
// Bytes are consumed from the limiter after being read, so that a single read never blocks.
type Reader struct {
	r io.Reader

	mu  sync.RWMutex
	lim *rate.Limiter
}

// NewReader returns a rate limited reader. A nil limiter disables rate limiting.
func NewReader(r io.Reader, lim *rate.Limiter) *Reader {
	return &Reader{r: r, lim: lim}
}

// Read implements io.Reader.
func (lr *Reader) Read(p []byte) (int, error) {
	n, err := lr.r.Read(p)
	if n == 0 {
		return n, err
	}
	lim := lr.Limiter()
	if lim != nil && !lim.AllowN(time.Now(), n) {
		return 0, ErrReadLimitExceeded
	}
	return n, err
}

// SetLimiter replaces current read rate limiter.
func (lr *Reader) SetLimiter(lim *rate.Limiter) {
	lr.mu.Lock()
	lr.lim = lim
	lr.mu.Unlock()
}

// Limiter returns current read rate limiter.
func (lr *Reader) Limiter() *rate.Limiter {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	return lr.lim
}

// NewLimiter returns a limiter allowing bytesPerSecond with the given burst.
// A zero bytesPerSecond value means no limit.
func NewLimiter(bytesPerSecond, burst int) *rate.Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}
	if burst < bytesPerSecond {
		burst = bytesPerSecond
	}
	return rate.NewLimiter(rate.Limit(bytesPerSecond), burst)
}
