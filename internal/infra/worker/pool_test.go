//go:build !integration

package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func TestPool_RunsTasks(t *testing.T) {
	p := NewPool(2, newLogger())
	p.Start(context.Background())
	defer p.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := 0
	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := p.SubmitWait(context.Background(), func(ctx context.Context) error {
			defer wg.Done()
			mu.Lock()
			seen++
			mu.Unlock()
			return errors.New("failures are only logged")
		})
		if err != nil {
			t.Fatalf("SubmitWait: %v", err)
		}
	}
	wg.Wait()
	if seen != 5 {
		t.Errorf("expected 5 tasks to run, got %d", seen)
	}
}

func TestPool_SubmitErrors(t *testing.T) {
	p := NewPool(1, newLogger())
	if err := p.Submit(nil); !errors.Is(err, ErrNilTask) {
		t.Errorf("expected ErrNilTask, got %v", err)
	}

	// Not started: the queue (4 slots) fills up.
	noop := func(context.Context) error { return nil }
	for i := 0; i < 4; i++ {
		if err := p.Submit(noop); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}
	if err := p.Submit(noop); !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.SubmitWait(ctx, noop); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	p.Stop()
	p.Stop()
	if err := p.Submit(noop); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}
