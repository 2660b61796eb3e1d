package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/nationalcolors/nationalcolors/internal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type contextKey string

const requestStartKey contextKey = "requestStart"

type responseObserver struct {
	http.ResponseWriter
	status      int
	written     int64
	wroteHeader bool
}

func (o *responseObserver) Write(p []byte) (n int, err error) {
	if !o.wroteHeader {
		o.WriteHeader(http.StatusOK)
	}
	n, err = o.ResponseWriter.Write(p)
	o.written += int64(n)
	return
}

func (o *responseObserver) WriteHeader(code int) {
	o.ResponseWriter.WriteHeader(code)
	if o.wroteHeader {
		return
	}
	o.wroteHeader = true
	o.status = code
}

// MarkRequestStart stores the time a request entered the middleware stack.
// It has to run before CollectRequestDuration.
func MarkRequestStart(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(context.WithValue(r.Context(), requestStartKey, time.Now()))
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

func CollectRequestDuration(log *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {

			o := &responseObserver{ResponseWriter: w}

			next.ServeHTTP(o, r)

			ctx := chi.RouteContext(r.Context())

			if ctx == nil {
				log.Warn("Failed to get route context")
				return
			}

			path := ctx.RoutePattern()

			if path == "" || path == "/metrics" {
				return
			}

			s, ok := r.Context().Value(requestStartKey).(time.Time)

			if !ok {
				log.WithField("path", path).Warn("Unable to calculate request duration, requestStart is nil")
				return
			}

			status := o.status
			if !o.wroteHeader {
				status = http.StatusOK
			}

			labels := prometheus.Labels{"method": r.Method, "path": path, "apiversion": internal.GetVersion(r), "code": fmt.Sprintf("%d", status)}

			RequestDuration.With(labels).Observe(time.Since(s).Seconds() * 1000)

			PayloadBytes.With(labels).Observe(float64(o.written))
		}

		return http.HandlerFunc(fn)
	}
}
