package bptree

// DefaultOrder is the maximum number of records per node when WithOrder is
// not given, matching the classic small-fan-out textbook configuration.
const DefaultOrder = 3

type options struct {
	order  int
	logger Logger
}

func defaultOptions() options {
	return options{
		order:  DefaultOrder,
		logger: DiscardLogger{},
	}
}

// Option configures tree behavior using the functional options pattern.
type Option func(*options)

// WithOrder sets the maximum number of records per node. The order must be
// at least 2; New panics otherwise.
func WithOrder(order int) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithLogger routes the tree's diagnostics to l. The default logger
// discards everything. The standard library's slog.Logger satisfies Logger
// directly.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
