package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/dependencies/clock"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/services/auth"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock allows tests to control time
	MockClock *clock.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := clock.NewMock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, auth.DefaultConfig(), logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
