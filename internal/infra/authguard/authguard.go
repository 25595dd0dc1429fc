// Package authguard implements login attempt counting and the 3-strikes
// lockout state machine. Guard state lives per directory, keyed by account
// address — it is process-lifetime only and never part of the account
// record itself.
package authguard

import (
	"sync"
	"time"

	"github.com/minibank/minibank/internal/domain"
	"github.com/minibank/minibank/internal/infra/directory"
)

// Config controls guard behavior.
type Config struct {
	MaxAttempts int           // password attempts per cycle (default: 3)
	Cooldown    time.Duration // lockout duration (default: 60s)
	Clock       func() time.Time
}

// DefaultConfig returns the simulator defaults: three strikes, one minute.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		Cooldown:    60 * time.Second,
	}
}

// Guard tracks per-address attempt counters and lock timestamps.
type Guard struct {
	mu       sync.Mutex
	dir      *directory.Directory
	cfg      Config
	now      func() time.Time
	attempts map[string]int       // address → attempts remaining this cycle
	lockedAt map[string]time.Time // address → lockout start
}

// New creates a guard over the given directory. A nil Clock falls back to
// time.Now.
func New(cfg Config, dir *directory.Directory) *Guard {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 60 * time.Second
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Guard{
		dir:      dir,
		cfg:      cfg,
		now:      now,
		attempts: make(map[string]int),
		lockedAt: make(map[string]time.Time),
	}
}

// ─── Identity Gate ──────────────────────────────────────────────────────────

// Authenticate is the first login gate: name and special code must exactly
// match the stored account. The rejection is generic whether the address is
// unknown or the fields mismatch, so callers cannot enumerate accounts. It
// touches neither password attempts nor lock state.
func (g *Guard) Authenticate(address, name, specialCode string) error {
	acct, err := g.dir.Lookup(address)
	if err != nil {
		return domain.ErrAuthFailed
	}
	if acct.Name != name || acct.SpecialCode != specialCode {
		return domain.ErrAuthFailed
	}
	return nil
}

// ─── Lockout ────────────────────────────────────────────────────────────────

// LockStatus reports whether an address is locked and, if so, the whole
// seconds remaining until the cooldown expires.
type LockStatus struct {
	Locked    bool
	Remaining int
}

// CheckLock queries the lock state for an address. When the cooldown has
// elapsed the lock is cleared and the attempt counter reset, so the next
// password cycle starts fresh. Callers poll this on their own schedule;
// there is no background timer and no early-unlock path.
func (g *Guard) CheckLock(address string) LockStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.checkLockLocked(address)
}

// checkLockLocked is CheckLock without the mutex; callers must hold g.mu.
func (g *Guard) checkLockLocked(address string) LockStatus {
	start, ok := g.lockedAt[address]
	if !ok {
		return LockStatus{}
	}
	elapsed := g.now().Sub(start)
	if elapsed < g.cfg.Cooldown {
		return LockStatus{
			Locked:    true,
			Remaining: int((g.cfg.Cooldown - elapsed).Seconds()),
		}
	}
	delete(g.lockedAt, address)
	delete(g.attempts, address)
	return LockStatus{}
}

// ─── Password Verification ──────────────────────────────────────────────────

// PasswordResult is the outcome of one VerifyPassword call.
type PasswordResult struct {
	OK           bool
	LockedOut    bool // this call tripped (or hit an active) lockout
	AttemptsLeft int
}

// VerifyPassword consumes one password attempt for the address. On success
// the attempt counter resets. On the strike that empties the counter the
// address is locked for the cooldown and the counter is reset for the next
// cycle. While a lockout is active the attempt is rejected outright without
// consuming anything.
func (g *Guard) VerifyPassword(address, password string) (PasswordResult, error) {
	acct, err := g.dir.Lookup(address)
	if err != nil {
		return PasswordResult{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if st := g.checkLockLocked(address); st.Locked {
		return PasswordResult{LockedOut: true}, nil
	}

	remaining, ok := g.attempts[address]
	if !ok {
		remaining = g.cfg.MaxAttempts
	}

	if acct.Password == password {
		g.attempts[address] = g.cfg.MaxAttempts
		return PasswordResult{OK: true, AttemptsLeft: g.cfg.MaxAttempts}, nil
	}

	remaining--
	if remaining <= 0 {
		g.lockedAt[address] = g.now()
		g.attempts[address] = g.cfg.MaxAttempts // fresh cycle after the cooldown
		return PasswordResult{LockedOut: true}, nil
	}
	g.attempts[address] = remaining
	return PasswordResult{AttemptsLeft: remaining}, nil
}

// AttemptsRemaining returns the attempts left in the current cycle, for
// display in the password prompt.
func (g *Guard) AttemptsRemaining(address string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if remaining, ok := g.attempts[address]; ok {
		return remaining
	}
	return g.cfg.MaxAttempts
}

// LockedCount returns the number of addresses currently under lockout.
func (g *Guard) LockedCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for addr := range g.lockedAt {
		if g.now().Sub(g.lockedAt[addr]) < g.cfg.Cooldown {
			n++
		}
	}
	return n
}
