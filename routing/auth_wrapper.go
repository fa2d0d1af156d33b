package routing

import (
	"log"
	"net/http"
	"strings"

	"github.com/zeptools/invoicegen/responses"
	"github.com/zeptools/invoicegen/sec"
)

// AuthWrapper requires a valid HS256 bearer token on the wrapped route.
type AuthWrapper struct {
	Secret []byte
}

func (aw *AuthWrapper) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signedToken, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || signedToken == "" {
			responses.WriteSimpleErrorJSON(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		parsedToken, err := sec.ParseHS256SignedToken(signedToken, aw.Secret)
		if err != nil || !parsedToken.Valid {
			responses.WriteSimpleErrorJSON(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		claims, err := sec.GetClaimsFromParsedJWTToken(parsedToken)
		if err != nil {
			responses.WriteSimpleErrorJSON(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		log.Printf("[INFO][AUTH] authorized sub=%v", claims["sub"])
		inner.ServeHTTP(w, r)
	})
}
