// Package auth holds the login-lockout state machine. The decision logic
// is a pure function over the persisted counters so it can be tested
// without a database; handlers apply the resulting Decision through the
// user repository.
package auth

import "time"

const (
	// MaxFailedAttempts is the number of consecutive password failures
	// that locks an account.
	MaxFailedAttempts = 3
	// LockDuration is how far in the future the unlock deadline is set.
	LockDuration = 5 * time.Minute
)

// Decision describes the outcome of one login attempt and the counter
// state that must be persisted afterwards.
type Decision struct {
	// Allow is true when the credentials are accepted.
	Allow bool
	// Locked is true when the attempt was rejected because the account is
	// still inside its lockout window, regardless of the password.
	Locked bool
	// Failures is the consecutive-failure count to persist.
	Failures int
	// LockedUntil is the unlock deadline to persist; nil clears any lock.
	LockedUntil *time.Time
}

// Evaluate runs one login attempt through the state machine.
//
// An account is Locked while now < lockedUntil; during that window every
// attempt is rejected. Once the deadline passes the account is Active
// again and the failure counter restarts from zero. A correct password on
// an active account resets everything; a wrong one increments the counter
// and, on the third consecutive failure, sets a deadline LockDuration
// ahead.
func Evaluate(failures int, lockedUntil *time.Time, now time.Time, passwordOK bool) Decision {
	if lockedUntil != nil {
		if now.Before(*lockedUntil) {
			return Decision{Locked: true, Failures: failures, LockedUntil: lockedUntil}
		}
		// Deadline passed: the lock expired, counting starts over.
		failures = 0
	}

	if passwordOK {
		return Decision{Allow: true}
	}

	failures++
	if failures >= MaxFailedAttempts {
		deadline := now.Add(LockDuration)
		return Decision{Failures: failures, LockedUntil: &deadline}
	}
	return Decision{Failures: failures}
}
