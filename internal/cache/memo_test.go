package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

func TestMemoize(t *testing.T) {
	var calls int
	fn := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	ctx := WithMemo(context.Background())
	for i := 0; i < 3; i++ {
		v, err := memoize(ctx, "catalog", fn)
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if v.(int) != 1 {
			t.Fatalf("expected memoized value 1, got %v", v)
		}
	}

	v, _ := memoize(ctx, "categories", fn)
	if v.(int) != 2 {
		t.Fatalf("expected separate key to run fn again, got %v", v)
	}

	// A new request starts with an empty memo.
	v, _ = memoize(WithMemo(context.Background()), "catalog", fn)
	if v.(int) != 3 {
		t.Fatalf("expected new memo to run fn again, got %v", v)
	}
}

func TestMemoizeWithoutMemo(t *testing.T) {
	var calls int
	fn := func() (interface{}, error) {
		calls++
		return nil, nil
	}
	ctx := context.Background()
	_, _ = memoize(ctx, "catalog", fn)
	_, _ = memoize(ctx, "catalog", fn)
	if calls != 2 {
		t.Fatalf("expected 2 calls without memo, got %d", calls)
	}
}

func TestMemoizeErrorAndConcurrency(t *testing.T) {
	var mu sync.Mutex
	var calls int
	fn := func() (interface{}, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil, errors.New("boom")
	}

	ctx := WithMemo(context.Background())
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := memoize(ctx, "catalog", fn); err == nil {
				t.Error("expected memoized error")
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}
