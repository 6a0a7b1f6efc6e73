package spantree

import "errors"

// ErrNilNetwork is returned when Enumerate receives a nil network.
var ErrNilNetwork = errors.New("spantree: network is nil")

// Default safety valves against combinatorial blow-up.
const (
	// DefaultMaxGrowCalls bounds the number of recursive grow invocations.
	DefaultMaxGrowCalls = 10_000_000

	// DefaultMaxTrees bounds the number of completed trees collected.
	DefaultMaxTrees = 100_000
)

// Option configures an enumeration run.
type Option func(*Options)

// Options holds the enumeration bounds. Reaching either bound stops the run
// and returns what has been collected; neither is an error.
type Options struct {
	// MaxGrowCalls caps recursive grow calls.
	MaxGrowCalls int

	// MaxTrees caps the number of completed spanning trees.
	MaxTrees int
}

// DefaultOptions returns the default enumeration bounds.
func DefaultOptions() Options {
	return Options{
		MaxGrowCalls: DefaultMaxGrowCalls,
		MaxTrees:     DefaultMaxTrees,
	}
}

// WithMaxGrowCalls caps the number of recursive grow calls.
func WithMaxGrowCalls(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxGrowCalls = n
		}
	}
}

// WithMaxTrees caps the number of collected spanning trees.
func WithMaxTrees(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxTrees = n
		}
	}
}

// Result carries the outcome of one enumeration run.
type Result struct {
	// Trees are the collected spanning trees, in discovery order.
	Trees []*Tree

	// GrowCalls is the number of recursive grow invocations consumed.
	GrowCalls int

	// Capped reports whether a bound cut the run short; the tree set is then
	// possibly incomplete but still valid.
	Capped bool
}
