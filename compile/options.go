// SPDX-License-Identifier: MIT

package compile

import (
	"io"
	"log"

	"github.com/katalvlaran/crnc/flow"
	"github.com/katalvlaran/crnc/symbol"
)

// Options configures a compilation.
//
// Style   – display style for log dumps and report labels (nil: raw names).
// Logger  – sink for stage dumps; default log.Default().
// Params  – parameter bindings used to evaluate initial values.
// Metrics – optional Prometheus collectors; nil records nothing.
type Options struct {
	Style   *symbol.Style
	Logger  *log.Logger
	Params  *flow.Env
	Metrics *Metrics

	label string // sample name appended to dump headers
}

// Option represents a functional option for configuring the compiler.
type Option func(*Options)

// DefaultOptions returns the baseline configuration.
func DefaultOptions() Options {
	return Options{Logger: log.Default()}
}

// WithStyle sets the display style.
func WithStyle(st *symbol.Style) Option {
	return func(o *Options) { o.Style = st }
}

// WithLogger sets the dump sink. A nil logger silences dumps.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		o.Logger = l
	}
}

// WithParams binds parameters for initial-value evaluation.
func WithParams(env *flow.Env) Option {
	return func(o *Options) { o.Params = env }
}

// WithMetrics enables metric recording.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

func withLabel(label string) Option {
	return func(o *Options) { o.label = label }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// dump writes one stage block to the logger.
func (o *Options) dump(stage, body string) {
	header := "--- " + stage
	if o.label != "" {
		header += " " + o.label
	}
	o.Logger.Printf("%s ---\n%s", header, body)
}
