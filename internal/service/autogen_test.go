package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"number_generator/internal/models"
	"number_generator/internal/widget"
)

// countingTarget records Generate calls per session.
type countingTarget struct {
	mu      sync.Mutex
	calls   map[int]int
	saved   map[int]bool
	saveErr error
}

func newCountingTarget() *countingTarget {
	return &countingTarget{calls: map[int]int{}, saved: map[int]bool{}}
}

func (c *countingTarget) Generate(ctx context.Context, sessionID int) (widget.ResultSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[sessionID]++
	return widget.ResultSet{1}, nil
}

func (c *countingTarget) SaveAutoGenerate(ctx context.Context, sessionID int, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saveErr != nil {
		return c.saveErr
	}
	c.saved[sessionID] = on
	return nil
}

func (c *countingTarget) count(sessionID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[sessionID]
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestAutoGenerate_FiresUntilDisabled(t *testing.T) {
	target := newCountingTarget()
	svc := NewAutoGenerateService(memStateRepo{newMemStore()}, target, 10*time.Millisecond, nil)
	ctx := context.Background()

	if err := svc.SetAutoGenerate(ctx, 1, true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !svc.Running(1) {
		t.Fatalf("expected running loop")
	}
	waitFor(t, 2*time.Second, func() bool { return target.count(1) >= 3 })

	if err := svc.SetAutoGenerate(ctx, 1, false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if svc.Running(1) {
		t.Fatalf("loop still registered after disable")
	}
	after := target.count(1)
	time.Sleep(50 * time.Millisecond)
	if got := target.count(1); got != after {
		t.Fatalf("generated after disable: %d -> %d", after, got)
	}
	if target.saved[1] {
		t.Fatalf("flag not stored as off")
	}
}

func TestAutoGenerate_EnableTwiceAndDisableStoppedAreNoops(t *testing.T) {
	target := newCountingTarget()
	svc := NewAutoGenerateService(memStateRepo{newMemStore()}, target, 10*time.Millisecond, nil)
	ctx := context.Background()

	if err := svc.SetAutoGenerate(ctx, 2, false); err != nil {
		t.Fatalf("disable stopped: %v", err)
	}
	_ = svc.SetAutoGenerate(ctx, 2, true)
	_ = svc.SetAutoGenerate(ctx, 2, true)

	svc.mu.Lock()
	n := len(svc.loops)
	svc.mu.Unlock()
	if n != 1 {
		t.Fatalf("loops=%d, want 1", n)
	}
	_ = svc.SetAutoGenerate(ctx, 2, false)
}

func TestAutoGenerate_SaveErrorDoesNotStart(t *testing.T) {
	target := newCountingTarget()
	target.saveErr = errors.New("db down")
	svc := NewAutoGenerateService(memStateRepo{newMemStore()}, target, 10*time.Millisecond, nil)

	if err := svc.SetAutoGenerate(context.Background(), 3, true); !errors.Is(err, target.saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if svc.Running(3) {
		t.Fatalf("loop started despite save error")
	}
}

func TestAutoGenerate_RunResumesAndStopsOnCancel(t *testing.T) {
	store := newMemStore()
	store.states[7] = models.WidgetState{SessionID: 7, AutoGenerate: true}
	store.states[8] = models.WidgetState{SessionID: 8}

	target := newCountingTarget()
	svc := NewAutoGenerateService(memStateRepo{store}, target, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	waitFor(t, 2*time.Second, func() bool { return target.count(7) >= 2 })
	if target.count(8) != 0 {
		t.Fatalf("session without flag was resumed")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
	if svc.Running(7) {
		t.Fatalf("loop survived shutdown")
	}
	after := target.count(7)
	time.Sleep(40 * time.Millisecond)
	if target.count(7) != after {
		t.Fatalf("generated after shutdown")
	}

	// no new loops once the process context is gone
	_ = svc.SetAutoGenerate(context.Background(), 9, true)
	if svc.Running(9) {
		t.Fatalf("loop started after shutdown")
	}
}

func TestAutoGenerate_DrivesWidgetService(t *testing.T) {
	store := newMemStore()
	widgets := newTestWidgetService(store, 0)
	svc := NewAutoGenerateService(memStateRepo{store}, widgets, 10*time.Millisecond, nil)
	ctx := context.Background()

	if err := svc.SetAutoGenerate(ctx, 1, true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool {
		st, err := widgets.GetState(ctx, 1)
		return err == nil && len(st.History) >= 2
	})
	if err := svc.SetAutoGenerate(ctx, 1, false); err != nil {
		t.Fatalf("disable: %v", err)
	}

	st, _ := widgets.GetState(ctx, 1)
	if st.AutoGenerate {
		t.Fatalf("stored flag still on")
	}
	n := len(st.History)
	time.Sleep(40 * time.Millisecond)
	st, _ = widgets.GetState(ctx, 1)
	if len(st.History) != n {
		t.Fatalf("history grew after disable: %d -> %d", n, len(st.History))
	}
}
