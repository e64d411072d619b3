// Package testkit holds small helpers shared by the package tests
package testkit

import (
	"strings"
	"testing"
)

// Swap points target at v until the test ends
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	old := *target
	*target = v
	t.Cleanup(func() { *target = old })
}

// MustPanic runs fn and returns what it panicked with; it fails the test when fn returns normally
func MustPanic(t testing.TB, fn func()) (got any) {
	t.Helper()
	defer func() {
		if got = recover(); got == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
	return nil
}

// MustContain fails unless out contains want, printing out in full
func MustContain(t testing.TB, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("missing %q in:\n%s", want, out)
	}
}
