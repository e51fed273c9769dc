package etest

import (
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
)

// NewLogger returns a logger that writes through t.Log,
// so output is attributed to the test that produced it
// and only shown on failure or with -v.
func NewLogger(t testing.TB) *slog.Logger {
	return slogt.New(t)
}
