package gridstore

import (
	"log/slog"

	"github.com/hupe1980/implicit/resource"
)

// DefaultCompression is used when WithCompression is not given.
const DefaultCompression = CompressionLZ4

// CurrentName is the blob holding the name of the committed snapshot.
const CurrentName = "CURRENT"

type options struct {
	compression CompressionType
	controller  *resource.Controller
	logger      *slog.Logger
}

// Option configures a Store.
type Option func(*options)

// WithCompression sets the payload compression for Save.
func WithCompression(c CompressionType) Option {
	return func(o *options) {
		if c.valid() {
			o.compression = c
		}
	}
}

// WithController throttles snapshot IO and accounts decode buffers against
// the controller's memory budget.
func WithController(c *resource.Controller) Option {
	return func(o *options) { o.controller = c }
}

// WithLogger sets the logger for save and load events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		compression: DefaultCompression,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
