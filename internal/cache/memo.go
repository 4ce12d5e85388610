package cache

import (
	"context"
	"sync"
)

type memoKeyType int

const memoKey memoKeyType = 0

// memo holds the results of cache reads made while serving one request.
type memo struct {
	mu    sync.Mutex
	calls map[string]*memoCall
}

type memoCall struct {
	once sync.Once
	val  interface{}
	err  error
}

// WithMemo returns a child context in which repeated reads of the same cached
// view resolve to the first read. Install it once per request.
func WithMemo(ctx context.Context) context.Context {
	return context.WithValue(ctx, memoKey, &memo{})
}

// memoize runs fn at most once per key for the memo stored in ctx. Without a
// memo in ctx, fn is always run.
func memoize(ctx context.Context, key string, fn func() (interface{}, error)) (interface{}, error) {
	m, ok := ctx.Value(memoKey).(*memo)
	if !ok {
		return fn()
	}

	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]*memoCall)
	}
	call, ok := m.calls[key]
	if !ok {
		call = &memoCall{}
		m.calls[key] = call
	}
	m.mu.Unlock()

	call.once.Do(func() {
		call.val, call.err = fn()
	})
	return call.val, call.err
}
