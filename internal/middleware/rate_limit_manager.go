package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorIdleTimeout = 3 * time.Minute
	contactIdleTimeout = 10 * time.Minute
)

// RateLimitManager manages rate limiters with lifecycle control
type RateLimitManager struct {
	visitors          map[string]*visitor
	visitorsMu        sync.RWMutex
	contactLimiters   map[string]*criticalOperationVisitor
	contactLimitersMu sync.RWMutex
	ctx               context.Context
	cancel            context.CancelFunc
	wg                sync.WaitGroup
}

// criticalOperationVisitor tracks rate limit state for form submissions
type criticalOperationVisitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimitManager creates a new rate limit manager with context-based lifecycle
func NewRateLimitManager(ctx context.Context) *RateLimitManager {
	managerCtx, cancel := context.WithCancel(ctx)

	m := &RateLimitManager{
		visitors:        make(map[string]*visitor),
		contactLimiters: make(map[string]*criticalOperationVisitor),
		ctx:             managerCtx,
		cancel:          cancel,
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

func newLimiter(requestsPerWindow, windowSeconds, burst int) *rate.Limiter {
	if windowSeconds <= 0 {
		windowSeconds = 60
	}

	limitPerSecond := float64(requestsPerWindow) / float64(windowSeconds)
	limit := rate.Limit(limitPerSecond)
	if limitPerSecond <= 0 {
		limit = rate.Inf
	}

	if burst < requestsPerWindow {
		burst = requestsPerWindow
	}

	return rate.NewLimiter(limit, burst)
}

// GetVisitor retrieves or creates a rate limiter for the given IP
func (m *RateLimitManager) GetVisitor(ip string, requestsPerWindow int, windowSeconds int, burst int) *rate.Limiter {
	if requestsPerWindow <= 0 {
		return nil
	}

	m.visitorsMu.Lock()
	defer m.visitorsMu.Unlock()

	v, exists := m.visitors[ip]
	if !exists {
		limiter := newLimiter(requestsPerWindow, windowSeconds, burst)
		m.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// GetContactLimiter retrieves or creates the contact form limiter for the given IP
func (m *RateLimitManager) GetContactLimiter(ip string, requestsPerWindow int, windowSeconds int) *rate.Limiter {
	if requestsPerWindow <= 0 {
		return nil
	}

	m.contactLimitersMu.Lock()
	defer m.contactLimitersMu.Unlock()

	v, exists := m.contactLimiters[ip]
	if !exists {
		limiter := newLimiter(requestsPerWindow, windowSeconds, requestsPerWindow)
		m.contactLimiters[ip] = &criticalOperationVisitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupLoop periodically removes inactive rate limiters
func (m *RateLimitManager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.cleanup(time.Now())
		}
	}
}

func (m *RateLimitManager) cleanup(now time.Time) {
	m.visitorsMu.Lock()
	for ip, v := range m.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTimeout {
			delete(m.visitors, ip)
		}
	}
	m.visitorsMu.Unlock()

	m.contactLimitersMu.Lock()
	for ip, v := range m.contactLimiters {
		if now.Sub(v.lastSeen) > contactIdleTimeout {
			delete(m.contactLimiters, ip)
		}
	}
	m.contactLimitersMu.Unlock()
}

// Shutdown stops the cleanup goroutine and waits for it to finish
func (m *RateLimitManager) Shutdown() error {
	m.cancel()
	m.wg.Wait()
	return nil
}
