package deps

import (
	"time"

	"github.com/MrSnakeDoc/folio/internal/httpserver/views"
	"github.com/MrSnakeDoc/folio/internal/logger"
	"github.com/MrSnakeDoc/folio/internal/scene"
	"github.com/MrSnakeDoc/folio/internal/state"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Version           string
	Commit            string
	BuildDate         string
	GoVersion         string
	TimeNow           func() time.Time // for testing, defaults to time.Now
	AllowedHosts      []string         // Host headers allowed to reach the admin pages
	AllowedCIDRS      []string         // IPs allowed to access infra endpoints
	TrustProxy        bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins       []string         // origins allowed on /api
	CookieSecure      bool             // mark the session cookie Secure
	SessionTTL        time.Duration    // lifetime of the session cookie
	LoginBurst        int              // login attempts allowed in a burst per IP
	LoginRefillPerMin int              // login attempts regained per minute per IP
	RedisClient       *redis.Client    // hosted store connection (nil in fallback mode)
	State             *state.Provider  // portfolio snapshot and sessions
	Scene             *scene.Loop      // ambient scene simulation
	Views             *views.Renderer  // page templates
	ReloadTrigger     chan struct{}    // Channel to trigger a manual content refresh
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
