package invariant

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireViolation(t *testing.T, prefix string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		msg, ok := r.(string)
		require.True(t, ok, "panic value should be a string")
		require.True(t, strings.HasPrefix(msg, prefix), "got %q", msg)
		require.Contains(t, msg, "invariant_test.go")
	}()
	fn()
}

func TestPreconditionHolds(t *testing.T) {
	require.NotPanics(t, func() { Precondition(true, "never") })
	require.NotPanics(t, func() { Invariant(true, "never") })
	require.NotPanics(t, func() { ExpectNoError(nil, "never") })
}

func TestPreconditionViolation(t *testing.T) {
	requireViolation(t, "PRECONDITION VIOLATION: radix 3", func() {
		Precondition(false, "radix %d", 3)
	})
}

func TestInvariantViolation(t *testing.T) {
	requireViolation(t, "INVARIANT VIOLATION: bad state", func() {
		Invariant(false, "bad state")
	})
}

func TestNotNil(t *testing.T) {
	var p *int
	requireViolation(t, "PRECONDITION VIOLATION: src must not be nil", func() {
		NotNil(nil, "src")
	})
	requireViolation(t, "PRECONDITION VIOLATION: p must not be nil", func() {
		NotNil(p, "p")
	})
	require.NotPanics(t, func() { NotNil(3, "n") })
}

func TestExpectNoError(t *testing.T) {
	requireViolation(t, "POSTCONDITION VIOLATION: decode must not fail: boom", func() {
		ExpectNoError(errors.New("boom"), "decode")
	})
}

func TestUnreachable(t *testing.T) {
	requireViolation(t, "UNREACHABLE VIOLATION: digit 'g'", func() {
		Unreachable("digit %q", 'g')
	})
}
