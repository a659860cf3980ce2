package testutil

import (
	"context"
	"testing"
	"time"
)

// DBTimeout ограничивает один тест против testcontainer.
const DBTimeout = 30 * time.Second

// Context возвращает context с DBTimeout, отменяемый при завершении теста.
func Context(tb testing.TB) context.Context {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DBTimeout)
	tb.Cleanup(cancel)

	return ctx
}
