package server

import "time"

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	idleTimeout         = 60 * time.Second
)

// shutdownTimeout applies when the config leaves it unset; tests shrink it.
var shutdownTimeout = 10 * time.Second

func orDefault(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
