package routing

import (
	"log"
	"net/http"
	"time"

	"github.com/zeptools/invoicegen/requests"
)

// LogWrapper logs one line per request after the handler returns.
func LogWrapper(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		inner.ServeHTTP(w, r)
		log.Printf("[INFO] %s %s ip=%s took=%v", r.Method, requests.FullURL(r), requests.GetClientIP(r), time.Since(start))
	})
}
