// Package session exposes the current user identity and plan tier to the
// core. The core never creates sessions itself; authentication is an
// external collaborator. Absence of a session forces local-only mode.
package session

import "sync"

// Plan is the account's subscription tier.
type Plan string

const (
	PlanFree      Plan = "free"
	PlanUnlimited Plan = "unlimited"
)

// Session identifies an authenticated user.
type Session struct {
	UserID string
	Email  string
	Plan   Plan
}

// Provider reports the active session, or nil when the user is signed out.
type Provider interface {
	Current() *Session
}

// MemoryProvider is a mutable Provider for the app lifecycle: constructed
// once per application session, updated on login/logout.
type MemoryProvider struct {
	mu      sync.RWMutex
	current *Session
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

func (p *MemoryProvider) Current() *Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *MemoryProvider) Login(s Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = &s
}

func (p *MemoryProvider) Logout() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = nil
}
