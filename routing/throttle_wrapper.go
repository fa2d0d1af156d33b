package routing

import (
	"net/http"
	"time"

	"github.com/zeptools/invoicegen/requests"
	"github.com/zeptools/invoicegen/responses"
	"github.com/zeptools/invoicegen/throttle"
)

// ThrottleWrapper rate-limits a route per client IP against one bucket group.
type ThrottleWrapper struct {
	Buckets *throttle.BucketStore[string]
	GroupID string
}

func (tw *ThrottleWrapper) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := requests.GetClientIP(r)
		if !tw.Buckets.Allow(tw.GroupID, clientIP, time.Now()) {
			responses.WriteSimpleErrorJSON(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		inner.ServeHTTP(w, r)
	})
}
