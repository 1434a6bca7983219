// Package retry executes database-bound operations with a bounded number of
// attempts and classifies failures so that permanent errors are never retried.
package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind partitions errors into categories the retry policy can reason about.
type Kind int

const (
	// KindTransport covers network failures and anything unclassified.
	KindTransport Kind = iota
	// KindNotFound marks a missing row (application-level, code PGRST116).
	KindNotFound
	// KindDuplicate marks a unique constraint violation (SQLSTATE 23505).
	KindDuplicate
	// KindNotNull marks a not-null constraint violation (SQLSTATE 23502).
	KindNotNull
	// KindForeignKey marks a foreign key violation (SQLSTATE 23503).
	KindForeignKey
	// KindPermission marks an authorization or row-level-security rejection.
	KindPermission
)

// Error carries a classified kind alongside the underlying cause.
type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a not-found error for the given table and id.
func NotFound(table string, id int64) error {
	return &Error{
		Kind: KindNotFound,
		Code: "PGRST116",
		Err:  fmt.Errorf("no row with id %d in %s", id, table),
	}
}

// IsNotFound reports whether err classifies as a missing-row error.
func IsNotFound(err error) bool {
	return Classify(err) == KindNotFound
}

// codeKinds maps known error codes to their kind. Codes are matched anywhere
// in the error text so that errors from drivers that embed the SQLSTATE in
// the message are classified the same way as wrapped *Error values.
var codeKinds = map[string]Kind{
	"PGRST116": KindNotFound,
	"23505":    KindDuplicate,
	"23502":    KindNotNull,
	"23503":    KindForeignKey,
}

// substringKinds maps lower-case message fragments to kinds, checked after codes.
var substringKinds = []struct {
	fragment string
	kind     Kind
}{
	{"duplicate key", KindDuplicate},
	{"duplicate entry", KindDuplicate},
	{"not found", KindNotFound},
	{"no rows in result set", KindNotFound},
	{"null value in column", KindNotNull},
	{"cannot be null", KindNotNull},
	{"foreign key", KindForeignKey},
	{"row-level security", KindPermission},
	{"permission denied", KindPermission},
	{"access denied", KindPermission},
}

// Classify inspects an error and returns its kind. Unrecognized errors are
// transport errors, which the default policy treats as retryable.
func Classify(err error) Kind {
	if err == nil {
		return KindTransport
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	msg := err.Error()
	for code, kind := range codeKinds {
		if strings.Contains(msg, code) {
			return kind
		}
	}
	lower := strings.ToLower(msg)
	for _, s := range substringKinds {
		if strings.Contains(lower, s.fragment) {
			return s.kind
		}
	}
	return KindTransport
}

// Policy maps error kinds to retryability. Kinds absent from the map are
// not retried.
type Policy map[Kind]bool

// DefaultPolicy retries transport errors only. Constraint violations,
// missing rows and permission rejections cannot succeed on a second attempt.
var DefaultPolicy = Policy{
	KindTransport:  true,
	KindNotFound:   false,
	KindDuplicate:  false,
	KindNotNull:    false,
	KindForeignKey: false,
	KindPermission: false,
}

// DefaultAttempts is the number of attempts used by the services.
const DefaultAttempts = 2

// DefaultDelay is the base backoff; attempt n sleeps DefaultDelay * n.
const DefaultDelay = 500 * time.Millisecond

// Do runs op up to attempts times with linearly increasing backoff between
// tries, consulting the policy after each failure. It returns the last error
// once attempts are exhausted, immediately when the policy marks the error
// non-retryable, or ctx.Err() if the context is cancelled while waiting.
func Do(ctx context.Context, policy Policy, attempts int, baseDelay time.Duration, op func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !policy[Classify(lastErr)] {
			return lastErr
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(baseDelay * time.Duration(attempt)):
		}
	}
	return lastErr
}
