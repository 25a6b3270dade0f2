package auth

import (
	"net"
	"sync"

	"golang.org/x/time/rate"
)

// loginLimiter throttles login attempts per client address: a burst of 5,
// refilling one attempt every two seconds.
type loginLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

func newLoginLimiter() *loginLimiter {
	return &loginLimiter{clients: make(map[string]*rate.Limiter)}
}

func (l *loginLimiter) allow(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	l.mu.Lock()
	limiter, ok := l.clients[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(0.5), 5)
		l.clients[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
