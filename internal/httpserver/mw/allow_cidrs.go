package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/folio/internal/logger"
	"github.com/MrSnakeDoc/folio/internal/utils"
)

// RestrictCIDRs answers 403 to clients outside allowed. It guards the
// infra endpoints (/infra, /readyz, /api/reload); an empty list lets
// everything through. Set trustProxy only behind a trusted tunnel or
// reverse proxy, otherwise clients can pick their own address.
func RestrictCIDRs(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	list, rejected := utils.NewAllowList(allowed)
	for _, entry := range rejected {
		log.Warn("ignoring invalid allow-list entry", logger.String("entry", entry))
	}

	if list.Len() == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !list.Contains(ip) {
				log.Warn("infra access denied",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
