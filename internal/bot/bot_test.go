package bot

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/regbot/internal/bot/tasks"
	"github.com/edgard/regbot/internal/config"
)

type fakeListener struct {
	returnEarly bool
}

func (l fakeListener) Start(ctx context.Context) {
	if l.returnEarly {
		return
	}
	<-ctx.Done()
}

type fakeServer struct {
	stop     chan struct{}
	startErr error
	shutdown atomic.Bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{stop: make(chan struct{})}
}

func (s *fakeServer) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stop
	return nil
}

func (s *fakeServer) Shutdown(context.Context) error {
	if s.shutdown.CompareAndSwap(false, true) {
		close(s.stop)
	}
	return nil
}

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := NewScheduler(discardLogger(), &config.SchedulerConfig{}, map[string]tasks.ScheduledTaskFunc{})
	require.NoError(t, err)
	return s
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	health := newFakeServer()
	b := NewBot(discardLogger(), fakeListener{}, health, nil, newTestScheduler(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.True(t, health.shutdown.Load())
}

func TestRunFailsWhenServerFails(t *testing.T) {
	t.Parallel()

	health := newFakeServer()
	health.startErr = errors.New("address in use")
	b := NewBot(discardLogger(), fakeListener{}, health, nil, newTestScheduler(t))

	err := b.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address in use")
	assert.True(t, health.shutdown.Load())
}

func TestRunFailsWhenListenerStopsEarly(t *testing.T) {
	t.Parallel()

	b := NewBot(discardLogger(), fakeListener{returnEarly: true}, newFakeServer(), nil, newTestScheduler(t))

	err := b.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpectedly")
}
