package sentryutil

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

type Options struct {
	DSN         string
	Environment string
	Release     string
}

// Init configures the global hub. An empty DSN leaves reporting disabled;
// a failing init is logged and never stops the process.
func Init(opts Options, log *zap.Logger) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		Release:          opts.Release,
		TracesSampleRate: 0.2,
		EnableTracing:    opts.DSN != "",
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			event.User = sentry.User{}
			return event
		},
	})
	if err != nil {
		log.Warn("sentry init failed", zap.Error(err))
		return
	}
	if opts.DSN == "" {
		log.Info("sentry disabled, SENTRY_DSN is empty")
	}
}

func Flush() { sentry.Flush(2 * time.Second) }

func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

func CaptureWarning(msg string, tags map[string]string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelWarning)
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureMessage(msg)
	})
}
