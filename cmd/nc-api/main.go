package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/evalphobia/logrus_sentry"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-redis/redis"
	"github.com/nationalcolors/nationalcolors/internal"
	"github.com/nationalcolors/nationalcolors/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func setupSentry(l *logrus.Logger, sentryDsn *string) {
	hook, err := logrus_sentry.NewSentryHook(*sentryDsn, []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	})

	if err != nil {
		l.WithError(err).Warn("Unable to set up Sentry, continuing without it")
		return
	}

	hook.Timeout = 2 * time.Second
	hook.StacktraceConfiguration.Enable = true

	if env := os.Getenv("APP_ENV"); env != "" {
		hook.SetEnvironment(env)
	}

	hook.SetRelease(fmt.Sprintf("%s@%s", internal.Version, internal.GitCommit))

	l.Hooks.Add(hook)
}

func main() {
	log := logrus.StandardLogger()

	log.Printf("National Colors API Server\nVersion: %s\tSHA: %s\tBuilt: %s", internal.Version, internal.GitCommit, internal.BuildDate)

	redisAddr := flag.String("redis-addr", "127.0.0.1:6379", "the location at which Redis server can be found")
	listen := flag.String("listen", ":8080", "address the HTTP server listens on")
	sentryDsn := flag.String("sentry-dsn", "", "Sentry/Raven DSN to send log/errors to")

	flag.Parse()

	if sentryDsn != nil && *sentryDsn != "" {
		setupSentry(log, sentryDsn)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     *redisAddr,
		Password: "",
		DB:       0,
	})

	srv := internal.NewHttpServerHandlers(redisClient, log)

	r := chi.NewRouter()
	r.Use(metrics.MarkRequestStart)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(internal.SetVersion)
	r.Use(metrics.CollectRequestDuration(log))

	r.Handle("/metrics", promhttp.Handler())

	r.Group(srv.MountRoutes)

	log.Fatal(http.ListenAndServe(*listen, r))
}
