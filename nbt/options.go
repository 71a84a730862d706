package nbt

import "fmt"

// MaxDepth is the default nesting budget for every recursive operation.
// A list or compound may hold at most MaxDepth levels of nested containers
// below it.
const MaxDepth = 512

// Options holds the limits applied by encoding, decoding, rendering,
// parsing and cloning.
type Options struct {
	MaxDepth    int // nesting budget, default MaxDepth
	MaxArrayLen int // cap on decoded array/list lengths, 0 = no cap
	MaxSize     int // cap on decoded bytes, 0 = no cap
}

// Option configures Options.
type Option func(*Options)

// WithMaxDepth sets the nesting budget. Negative values are rejected with
// ErrInvalidArgument when the option is applied.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		o.MaxDepth = n
	}
}

// WithMaxArrayLen caps the element count accepted for arrays and lists when
// decoding. Larger declared counts fail with ErrMalformed before any
// element is read.
func WithMaxArrayLen(n int) Option {
	return func(o *Options) {
		o.MaxArrayLen = n
	}
}

// WithMaxSize caps the number of bytes Decode and Unmarshal consume for one
// root entry. Input that runs past the cap fails with ErrMalformed. Zero
// removes the cap.
func WithMaxSize(n int) Option {
	return func(o *Options) {
		o.MaxSize = n
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := Options{MaxDepth: MaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxDepth < 0 {
		return o, fmt.Errorf("%w: negative max depth %d", ErrInvalidArgument, o.MaxDepth)
	}
	if o.MaxArrayLen < 0 {
		return o, fmt.Errorf("%w: negative max array length %d", ErrInvalidArgument, o.MaxArrayLen)
	}
	if o.MaxSize < 0 {
		return o, fmt.Errorf("%w: negative max size %d", ErrInvalidArgument, o.MaxSize)
	}
	return o, nil
}

// descend spends one level of the nesting budget before entering a child.
func descend(budget int) (int, error) {
	if budget <= 0 {
		return 0, ErrMaxDepth
	}
	return budget - 1, nil
}
