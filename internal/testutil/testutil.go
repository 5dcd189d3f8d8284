// Package testutil holds small assertion helpers shared across package tests.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// DiscardLogger returns a *slog.Logger that discards all output.
// Use this in tests instead of defining a local discardLogger() helper.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Equal fails the test if want != got.
func Equal[T comparable](t testing.TB, want, got T) {
	t.Helper()
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// NotEqual fails the test if want == got.
func NotEqual[T comparable](t testing.TB, want, got T) {
	t.Helper()
	if got == want {
		t.Errorf("got %v, should not equal %v", got, want)
	}
}

// NoError fails the test immediately if err is not nil.
func NoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ErrorContains fails the test if err is nil or doesn't contain substr.
func ErrorContains(t testing.TB, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("error %q does not contain %q", err.Error(), substr)
	}
}

// True fails the test if condition is false.
func True(t testing.TB, condition bool, msgAndArgs ...any) {
	t.Helper()
	if !condition {
		if len(msgAndArgs) > 0 {
			t.Errorf("expected true: "+fmt.Sprint(msgAndArgs[0]), msgAndArgs[1:]...)
		} else {
			t.Error("expected true, got false")
		}
	}
}

// False fails the test if condition is true.
func False(t testing.TB, condition bool, msgAndArgs ...any) {
	t.Helper()
	if condition {
		if len(msgAndArgs) > 0 {
			t.Errorf("expected false: "+fmt.Sprint(msgAndArgs[0]), msgAndArgs[1:]...)
		} else {
			t.Error("expected false, got true")
		}
	}
}
