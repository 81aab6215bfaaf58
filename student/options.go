package student

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a store implementation.
type Option func(*storeOptions)

type storeOptions struct {
	log *zap.Logger
	now func() time.Time
}

func defaultOptions() storeOptions {
	return storeOptions{
		log: zap.NewNop(),
		now: time.Now,
	}
}

// WithLogger attaches a structured logger; store operations log at debug
// level with their duration.
func WithLogger(log *zap.Logger) Option {
	return func(o *storeOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithClock overrides the time source, used by tests to control timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}
