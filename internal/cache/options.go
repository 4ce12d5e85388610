package cache

import (
	"portfolio/internal/stats"

	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/clock"
)

// Option configures optional behaviour of a Cache. All Options provided by
// this package start with a "With" prefix.
type Option func(*options)

// WithClock sets the Clock used to timestamp and expire snapshots.
func WithClock(c clock.Clock) Option {
	return func(ops *options) {
		ops.clock = c
	}
}

// WithStats records lookup and refresh metrics in sc.
func WithStats(sc tools.StatsClient) Option {
	return func(ops *options) {
		ops.stats = sc
	}
}

// WithStaleOnError makes a failed refresh return the previous, expired
// snapshot (when one exists) together with the error, instead of an empty
// view. The stored snapshot is still left untouched.
func WithStaleOnError() Option {
	return func(ops *options) {
		ops.staleOnError = true
	}
}

type options struct {
	clock        clock.Clock
	stats        tools.StatsClient
	staleOnError bool
}

func defaultOptions() options {
	return options{
		clock: &clock.Default{},
		stats: stats.Nop{},
	}
}
