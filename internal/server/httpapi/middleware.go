package httpapi

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/webident/authcore/internal/common"
)

// deniedMessage is the single authorization-failure body. Every failed
// sub-check (missing cookie, bad signature, revoked or expired session,
// origin mismatch) produces exactly this response so a caller cannot learn
// which one applied.
const deniedMessage = "You do not have permission to access this route."

// gateExemptSegments lists first path segments that bypass the request
// gate: the identity-issuance routes themselves plus the health probe.
var gateExemptSegments = map[string]struct{}{
	"session": {},
	"health":  {},
}

// clientIP extracts the network origin of the request, the address sessions
// are pinned to.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// requestGate admits or rejects every inbound call before routing. Exempt
// path prefixes pass through untouched; everything else requires the auth
// cookie to open, be unexpired, and have a live, origin-matching ledger entry.
func (h *Handler) requestGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		segments := strings.Split(strings.TrimPrefix(r.URL.Path, "/"), "/")
		if len(segments) > 0 {
			if _, ok := gateExemptSegments[segments[0]]; ok {
				next.ServeHTTP(w, r)
				return
			}
		}

		var tokenString string
		if c, err := r.Cookie(common.AuthCookieName); err == nil {
			tokenString = c.Value
		}

		err := h.auth.Admit(r.Context(), tokenString, clientIP(r), time.Now())
		if err != nil {
			if errors.Is(err, common.ErrInternal) {
				h.logger.Error(r.Context(), "request gate store failure", "path", r.URL.Path)
				writeError(w, "Something went wrong. Please try again.")
				return
			}
			writeFail(w, http.StatusUnauthorized, deniedMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}
