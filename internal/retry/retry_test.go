//go:build unit

package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestDo_AttemptCeiling(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) error {
		calls++
		if calls <= 2 {
			return errors.New("connection reset")
		}
		return nil
	}

	err := Do(context.Background(), DefaultPolicy, 2, time.Millisecond, op)
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", calls)
	}
}

func TestDo_SucceedsOnLaterAttempt(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) error {
		calls++
		if calls <= 2 {
			return errors.New("connection reset")
		}
		return nil
	}

	if err := Do(context.Background(), DefaultPolicy, 3, time.Millisecond, op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected success on the third attempt, got %d calls", calls)
	}
}

func TestDo_NonRetryableShortCircuits(t *testing.T) {
	for _, code := range []string{"PGRST116", "23505"} {
		t.Run(code, func(t *testing.T) {
			calls := 0
			op := func(ctx context.Context) error {
				calls++
				return fmt.Errorf("%s: it went wrong", code)
			}

			err := Do(context.Background(), DefaultPolicy, 3, time.Millisecond, op)
			if err == nil {
				t.Fatal("expected error")
			}
			if calls != 1 {
				t.Errorf("expected a single attempt for code %s, got %d", code, calls)
			}
		})
	}
}

func TestDo_ContextCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	op := func(ctx context.Context) error {
		cancel()
		return errors.New("connection reset")
	}

	err := Do(ctx, DefaultPolicy, 3, time.Hour, op)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"wrapped not found", fmt.Errorf("store: %w", NotFound("news", 12)), KindNotFound},
		{"duplicate code", errors.New("Error 23505: duplicate key value"), KindDuplicate},
		{"duplicate entry message", errors.New("Duplicate entry 'x' for key 'name'"), KindDuplicate},
		{"not null", errors.New("Column 'title' cannot be null"), KindNotNull},
		{"foreign key", errors.New("a foreign key constraint fails"), KindForeignKey},
		{"rls", errors.New("new row violates row-level security policy"), KindPermission},
		{"plain transport", errors.New("dial tcp: i/o timeout"), KindTransport},
		{"no rows", errors.New("sql: no rows in result set"), KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Errorf("Classify(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	msg := Describe(OpCreate, "documents", errors.New("Error 23505: duplicate"))
	if !strings.Contains(msg, "la création dans documents") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "existe déjà") {
		t.Errorf("expected duplicate reason, got: %s", msg)
	}
}

func TestNotFoundError(t *testing.T) {
	err := NotFound("programs", 7)
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
	if !strings.Contains(err.Error(), "PGRST116") {
		t.Errorf("expected code in message, got: %s", err.Error())
	}
}
