package directory

import "github.com/minibank/minibank/internal/domain"

// ─── Account Linking ────────────────────────────────────────────────────────
// Linking is a manual-retry loop driven by the caller during account
// creation: the applicant gets a fixed number of tries at the existing
// holder's special code. It has no time component and no persistent state —
// it is not the login lockout.

// DefaultLinkAttempts is the number of special-code tries an applicant gets.
const DefaultLinkAttempts = 3

// LinkSession tracks one linking exchange against a matched account's code.
type LinkSession struct {
	expected  string
	remaining int
	linked    bool
}

// NewLinkSession starts a linking exchange. maxAttempts values below one
// fall back to DefaultLinkAttempts.
func NewLinkSession(expectedCode string, maxAttempts int) *LinkSession {
	if maxAttempts < 1 {
		maxAttempts = DefaultLinkAttempts
	}
	return &LinkSession{expected: expectedCode, remaining: maxAttempts}
}

// Try consumes one attempt comparing the candidate code. It reports whether
// the codes matched; once linked or exhausted, further calls change nothing.
func (s *LinkSession) Try(candidateCode string) bool {
	if s.linked || s.remaining <= 0 {
		return s.linked
	}
	s.remaining--
	if candidateCode == s.expected {
		s.linked = true
	}
	return s.linked
}

// Remaining returns the attempts left.
func (s *LinkSession) Remaining() int { return s.remaining }

// Linked reports whether the exchange succeeded.
func (s *LinkSession) Linked() bool { return s.linked }

// Result returns nil while the exchange can still succeed and
// domain.ErrLinkFailed once all attempts are spent without a match, at
// which point creation must be aborted with no account persisted.
func (s *LinkSession) Result() error {
	if s.linked {
		return nil
	}
	if s.remaining <= 0 {
		return domain.ErrLinkFailed
	}
	return nil
}
