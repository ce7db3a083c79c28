package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ShutdownInReverseOrder(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	closer := func(name string) func() error {
		return func() error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := Run(ctx, []Service{NewCleanup(closer("db")), NewCleanup(closer("watcher"))})
	require.NoError(t, err)
	assert.Equal(t, []string{"watcher", "db"}, order)
}

func TestRun_StartErrorStopsAll(t *testing.T) {
	closed := false
	boom := errors.New("inbox missing")

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), []Service{
			NewCleanup(func() error { closed = true; return nil }),
			NewFunc(func(context.Context) error { return boom }),
		})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
		assert.True(t, closed)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRun_CleanupAfterStartReturns(t *testing.T) {
	var (
		mu     sync.Mutex
		events []string
	)
	record := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Run(ctx, []Service{
		NewCleanup(func() error { record("close db"); return nil }),
		NewFunc(func(ctx context.Context) error {
			<-ctx.Done()
			// an import still finishing after cancellation
			time.Sleep(50 * time.Millisecond)
			record("import done")
			return nil
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"import done", "close db"}, events)
}
