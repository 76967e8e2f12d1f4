package logging

import (
	"log/slog"
	"os"
	"sync"

	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

var (
	mu       sync.Mutex
	handlers []slog.Handler
)

// Setup installs the default logger: JSON on stdout in production, text in
// development, plus a Sentry handler for ERROR+ when Sentry is initialised.
func Setup(production, sentryEnabled bool) {
	mu.Lock()
	defer mu.Unlock()

	handlers = handlers[:0]
	if production {
		handlers = append(handlers, slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	} else {
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if sentryEnabled {
		handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
	}
	install()
}

// AddSink fans log records out to an additional handler, e.g. the database sink.
func AddSink(h slog.Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers = append(handlers, h)
	install()
}

func install() {
	if len(handlers) == 1 {
		slog.SetDefault(slog.New(handlers[0]))
		return
	}
	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
}
