package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"number_generator/internal/models"
	"number_generator/internal/widget"
)

func TestWidgetService_GetState_DefaultsForNewSession(t *testing.T) {
	svc := newTestWidgetService(newMemStore(), 0)

	st, err := svc.GetState(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if st.Params != widget.DefaultParams() {
		t.Fatalf("params=%+v, want defaults", st.Params)
	}
	if st.Theme != widget.ThemeLight || st.AutoGenerate {
		t.Fatalf("unexpected ui state: %+v", st)
	}
	if st.Current == nil || len(st.Current) != 0 || st.History == nil || len(st.History) != 0 {
		t.Fatalf("expected empty non-nil current/history: %+v", st)
	}
}

func TestWidgetService_GenerateRecordsHistoryMostRecentFirst(t *testing.T) {
	store := newMemStore()
	svc := newTestWidgetService(store, 0)
	ctx := context.Background()

	if err := svc.SetParams(ctx, 1, widget.Params{Min: 1, Max: 10, Count: 5, Filter: widget.FilterAll}); err != nil {
		t.Fatalf("SetParams: %v", err)
	}

	var drawn []widget.ResultSet
	for i := 0; i < 3; i++ {
		rs, err := svc.Generate(ctx, 1)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(rs) != 5 {
			t.Fatalf("filter=all: len=%d, want 5", len(rs))
		}
		for _, v := range rs {
			if v < 1 || v > 10 {
				t.Fatalf("value %d out of [1,10]", v)
			}
		}
		drawn = append(drawn, rs)
	}

	st, err := svc.GetState(ctx, 1)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if len(st.History) != 3 {
		t.Fatalf("history len=%d, want 3", len(st.History))
	}
	for i := range drawn {
		if st.History[i].String() != drawn[len(drawn)-1-i].String() {
			t.Fatalf("history[%d]=%v, want %v", i, st.History[i], drawn[len(drawn)-1-i])
		}
	}
	if st.Current.String() != drawn[2].String() {
		t.Fatalf("current=%v, want %v", st.Current, drawn[2])
	}

	types := store.eventTypes(1)
	if len(types) != 4 || types[0] != models.EventParams || types[3] != models.EventGenerate {
		t.Fatalf("unexpected events: %v", types)
	}
}

func TestWidgetService_GenerateEvenFilter(t *testing.T) {
	svc := newTestWidgetService(newMemStore(), 0)
	ctx := context.Background()

	if err := svc.SetParams(ctx, 2, widget.Params{Min: 1, Max: 10, Count: 5, Filter: widget.FilterEven}); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	for i := 0; i < 20; i++ {
		rs, err := svc.Generate(ctx, 2)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(rs) > 5 {
			t.Fatalf("len=%d exceeds count", len(rs))
		}
		for _, v := range rs {
			if v%2 != 0 || v < 1 || v > 10 {
				t.Fatalf("value %d is not an even number in [1,10]", v)
			}
		}
	}
}

func TestWidgetService_ClearKeepsHistory(t *testing.T) {
	svc := newTestWidgetService(newMemStore(), 0)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, 3); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := svc.Clear(ctx, 3); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	st, err := svc.GetState(ctx, 3)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if len(st.Current) != 0 {
		t.Fatalf("current not cleared: %v", st.Current)
	}
	if len(st.History) != 1 || len(st.History[0]) != widget.DefaultCount {
		t.Fatalf("history changed by clear: %v", st.History)
	}
}

func TestWidgetService_SetParamsRejectsInvalid(t *testing.T) {
	store := newMemStore()
	svc := newTestWidgetService(store, 50)
	ctx := context.Background()

	cases := []struct {
		name string
		p    widget.Params
		want error
	}{
		{"min_gt_max", widget.Params{Min: 9, Max: 1, Count: 3}, widget.ErrInvalidRange},
		{"negative_count", widget.Params{Min: 1, Max: 9, Count: -1}, widget.ErrNegativeCount},
		{"over_limit", widget.Params{Min: 1, Max: 9, Count: 51}, widget.ErrCountTooLarge},
		{"unknown_filter", widget.Params{Min: 1, Max: 9, Count: 3, Filter: "prime"}, widget.ErrInvalidFilter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.SetParams(ctx, 4, tc.p); !errors.Is(err, tc.want) {
				t.Fatalf("err=%v, want %v", err, tc.want)
			}
		})
	}

	st, _ := svc.GetState(ctx, 4)
	if st.Params != widget.DefaultParams() {
		t.Fatalf("params changed after rejected updates: %+v", st.Params)
	}
	if len(store.eventTypes(4)) != 0 {
		t.Fatalf("rejected updates must not be logged")
	}
}

func TestWidgetService_SetParamsEmptyFilterMeansAll(t *testing.T) {
	svc := newTestWidgetService(newMemStore(), 0)
	ctx := context.Background()

	if err := svc.SetParams(ctx, 1, widget.Params{Min: 0, Max: 3, Count: 0}); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	st, _ := svc.GetState(ctx, 1)
	if st.Params.Filter != widget.FilterAll {
		t.Fatalf("filter=%q, want all", st.Params.Filter)
	}
	rs, err := svc.Generate(ctx, 1)
	if err != nil || len(rs) != 0 {
		t.Fatalf("count=0 should yield empty set, got %v, %v", rs, err)
	}
}

func TestWidgetService_Theme(t *testing.T) {
	svc := newTestWidgetService(newMemStore(), 0)
	ctx := context.Background()

	th, err := svc.ToggleTheme(ctx, 1)
	if err != nil || th != widget.ThemeDark {
		t.Fatalf("ToggleTheme = %q, %v", th, err)
	}
	if err := svc.SetTheme(ctx, 1, widget.ThemeLight); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if err := svc.SetTheme(ctx, 1, "sepia"); !errors.Is(err, widget.ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	st, _ := svc.GetState(ctx, 1)
	if st.Theme != widget.ThemeLight {
		t.Fatalf("theme=%q", st.Theme)
	}
}

func TestWidgetService_GenerateHistoryErrorLeavesStateUntouched(t *testing.T) {
	store := newMemStore()
	store.appendErr = errors.New("history down")
	svc := newTestWidgetService(store, 0)

	if _, err := svc.Generate(context.Background(), 1); !errors.Is(err, store.appendErr) {
		t.Fatalf("expected history error, got %v", err)
	}
	if _, ok := store.states[1]; ok {
		t.Fatalf("state saved despite history failure")
	}
}

func TestWidgetService_GenerateStateErrorAddsNoHistory(t *testing.T) {
	store := newMemStore()
	svc := newTestWidgetService(store, 0)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, 1); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	before, _ := svc.GetState(ctx, 1)

	stateDown := errors.New("state down")
	store.setSaveErr(stateDown)
	if _, err := svc.Generate(ctx, 1); !errors.Is(err, stateDown) {
		t.Fatalf("expected state error, got %v", err)
	}
	store.setSaveErr(nil)

	after, err := svc.GetState(ctx, 1)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if len(after.History) != len(before.History) {
		t.Fatalf("failed generation changed history: %d -> %d", len(before.History), len(after.History))
	}
	if after.Current.String() != before.Current.String() {
		t.Fatalf("failed generation changed current: %v -> %v", before.Current, after.Current)
	}
	if n := len(store.eventTypes(1)); n != 1 {
		t.Fatalf("failed generation was logged: %d events", n)
	}
}

func TestWidgetService_UpdateParamsConcurrentPartialUpdates(t *testing.T) {
	svc := newTestWidgetService(newMemStore(), 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = svc.UpdateParams(ctx, 1, func(p widget.Params) (widget.Params, error) {
				p.Count = 7
				return p, nil
			})
		}()
		go func() {
			defer wg.Done()
			_ = svc.UpdateParams(ctx, 1, func(p widget.Params) (widget.Params, error) {
				p.Min = 5
				return p, nil
			})
		}()
	}
	wg.Wait()

	st, _ := svc.GetState(ctx, 1)
	if st.Params.Min != 5 || st.Params.Count != 7 || st.Params.Max != widget.DefaultMax {
		t.Fatalf("partial updates lost: %+v", st.Params)
	}
}

func TestWidgetService_UpdateParamsErrorLeavesSession(t *testing.T) {
	store := newMemStore()
	svc := newTestWidgetService(store, 0)
	ctx := context.Background()

	err := svc.UpdateParams(ctx, 1, func(p widget.Params) (widget.Params, error) {
		return p, widget.ErrInvalidFilter
	})
	if !errors.Is(err, widget.ErrInvalidFilter) {
		t.Fatalf("expected fn error, got %v", err)
	}
	err = svc.UpdateParams(ctx, 1, func(p widget.Params) (widget.Params, error) {
		p.Min, p.Max = 9, 1
		return p, nil
	})
	if !errors.Is(err, widget.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	st, _ := svc.GetState(ctx, 1)
	if st.Params != widget.DefaultParams() || len(store.eventTypes(1)) != 0 {
		t.Fatalf("rejected update changed the session: %+v", st.Params)
	}
}

func TestWidgetService_SessionsAreIsolated(t *testing.T) {
	svc := newTestWidgetService(newMemStore(), 0)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, 1); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	st, _ := svc.GetState(ctx, 2)
	if len(st.History) != 0 || len(st.Current) != 0 {
		t.Fatalf("session 2 sees session 1 data: %+v", st)
	}
}
