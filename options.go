package normal

import (
	"fmt"
	"log/slog"
)

// MismatchPolicy decides what happens when plain data does not fit the slot
// it is denormalized into.
type MismatchPolicy int

const (
	// PolicyOverwrite assigns the data verbatim.
	PolicyOverwrite MismatchPolicy = iota
	// PolicyStrict fails with a *TypeError.
	PolicyStrict
)

func (p MismatchPolicy) String() string {
	switch p {
	case PolicyOverwrite:
		return "overwrite"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("MismatchPolicy(%d)", int(p))
	}
}

// Option configures a Mapper.
type Option interface {
	apply(*config)
}

type config struct {
	policy MismatchPolicy
	logger *slog.Logger
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

func newConfig(opts ...Option) *config {
	c := &config{policy: PolicyOverwrite}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

func WithPolicy(p MismatchPolicy) Option {
	return optionFunc(func(c *config) {
		c.policy = p
	})
}

// Strict is WithPolicy(PolicyStrict).
func Strict() Option {
	return WithPolicy(PolicyStrict)
}

// WithLogger sets the logger receiving debug records for recursion steps and
// verbatim overwrites.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *config) {
		c.logger = l
	})
}
