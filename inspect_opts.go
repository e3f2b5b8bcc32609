package inspect

import "log/slog"

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger used by the inspector and its content diff
// engine. The default discards all logs.
func WithLogger(l *slog.Logger) Option {
	return func(ins *Inspector) {
		ins.logger = l
	}
}

// WithWorkers bounds the number of concurrent hashing goroutines used
// while snapshotting directories. Values < 1 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(ins *Inspector) {
		ins.workers = n
	}
}

// WithExcludes skips files and directories whose base name matches any of
// the given glob patterns during directory comparison.
func WithExcludes(patterns ...string) Option {
	return func(ins *Inspector) {
		ins.excludes = append(ins.excludes, patterns...)
	}
}

// WithStyle selects the syntax highlight style by name.
func WithStyle(name string) Option {
	return func(ins *Inspector) {
		ins.style = name
	}
}
