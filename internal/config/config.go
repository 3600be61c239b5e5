package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Hosted content store. Both values present => hosted mode,
	// anything else => local fallback document.
	StoreURL string // ex: "redis://content.example.net:6379/0"
	StoreKey string // credential for the hosted store

	LocalDBPath string // SQLite file holding the fallback document

	// Hosted store connection policy
	RedisPoolSize       int           // connection pool size
	RedisDT             time.Duration // dial timeout (ex: 5s)
	RedisRT             time.Duration // read timeout (ex: 3s)
	RedisWT             time.Duration // write timeout (ex: 3s)
	RedisConnectTimeout time.Duration // total time to wait for the first ping at startup
	RedisRetryInterval  time.Duration // initial wait between pings, grows exponentially
	RedisMaxWait        time.Duration // cap for the wait between pings
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts

	SeedFile        string        // optional YAML seed imported when the store is empty
	RefreshInterval time.Duration // periodic content refresh (0 disables the ticker)

	// Sessions
	SessionTTL      time.Duration // lifetime of an admin session
	SweepInterval   time.Duration // how often expired local sessions are dropped
	LocalPassphrase string        // stand-in credential in local mode
	AdminEmail      string        // hosted mode: bootstrap admin account (optional)
	AdminPassword   string        // hosted mode: bootstrap admin password (optional)
	CookieSecure    bool          // mark the session cookie Secure

	// Ambient scene
	ScenePoints int // number of particles
	SceneFPS    int // simulation steps per second

	// Access restrictions
	AllowedHosts      []string // optional, restrict admin pages to specific Host headers
	AllowedCIDRS      []string // optional, restrict infra endpoints to specific IPs/CIDRs
	TrustProxy        bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins       []string // origins allowed on /api
	LoginBurst        int      // login attempts allowed in a burst per IP
	LoginRefillPerMin int      // login attempts regained per minute per IP
}

// HostedMode reports whether both hosted store values are configured.
func (c *Config) HostedMode() bool {
	return c.StoreURL != "" && c.StoreKey != ""
}

func Load() *Config {
	// .env is optional; real environment variables always win.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("FOLIO_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("FOLIO_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("FOLIO_LOG_LEVEL", "info"),
		PrettyLog: mustBool("FOLIO_PRETTY_LOG", true),

		// Storage
		StoreURL:    getenv("FOLIO_STORE_URL", ""),
		StoreKey:    getenv("FOLIO_STORE_KEY", ""),
		LocalDBPath: getenv("FOLIO_LOCAL_DB", "./data/folio.db"),

		RedisPoolSize:       getenvInt("FOLIO_REDIS_POOL_SIZE", 10),
		RedisDT:             mustDuration("FOLIO_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("FOLIO_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("FOLIO_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisConnectTimeout: mustDuration("FOLIO_REDIS_CONNECT_TIMEOUT", 15*time.Second),
		RedisRetryInterval:  mustDuration("FOLIO_REDIS_RETRY_INTERVAL", time.Second),
		RedisMaxWait:        mustDuration("FOLIO_REDIS_MAX_WAIT", 5*time.Second),
		RedisPingTimeout:    mustDuration("FOLIO_REDIS_PING_TIMEOUT", 2*time.Second),
		RedisWarnThreshold:  getenvInt("FOLIO_REDIS_WARN_THRESHOLD", 3),

		// Content
		SeedFile:        getenv("FOLIO_SEED_FILE", ""),
		RefreshInterval: mustDuration("FOLIO_REFRESH_INTERVAL", 5*time.Minute),

		// Sessions
		SessionTTL:      mustDuration("FOLIO_SESSION_TTL", 12*time.Hour),
		SweepInterval:   mustDuration("FOLIO_SESSION_SWEEP_INTERVAL", 10*time.Minute),
		LocalPassphrase: getenv("FOLIO_LOCAL_PASSPHRASE", "admin123"),
		AdminEmail:      getenv("FOLIO_ADMIN_EMAIL", ""),
		AdminPassword:   getenv("FOLIO_ADMIN_PASSWORD", ""),
		CookieSecure:    mustBool("FOLIO_COOKIE_SECURE", false),

		// Scene
		ScenePoints: getenvInt("FOLIO_SCENE_POINTS", 20000),
		SceneFPS:    getenvInt("FOLIO_SCENE_FPS", 30),

		// Access restrictions
		AllowedHosts:      splitAndTrim(getenv("FOLIO_ALLOWED_HOSTS", "")),
		AllowedCIDRS:      parseAllowedIPs(getenv("FOLIO_ALLOWED_CIDRS", "")),
		TrustProxy:        mustBool("FOLIO_TRUST_PROXY", false),
		CORSOrigins:       splitAndTrim(getenv("FOLIO_CORS_ORIGINS", "*")),
		LoginBurst:        getenvInt("FOLIO_LOGIN_BURST", 5),
		LoginRefillPerMin: getenvInt("FOLIO_LOGIN_REFILL_PER_MIN", 10),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.StoreKey != "" {
			cfgCopy.StoreKey = "***REDACTED***"
		}
		if cfgCopy.AdminPassword != "" {
			cfgCopy.AdminPassword = "***REDACTED***"
		}
		cfgCopy.LocalPassphrase = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func (c *Config) validate() error {
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("FOLIO_ADMIN_EMAIL and FOLIO_ADMIN_PASSWORD must be set together")
	}
	if c.ScenePoints <= 0 {
		return fmt.Errorf("FOLIO_SCENE_POINTS must be > 0, got %d", c.ScenePoints)
	}
	if c.SceneFPS <= 0 {
		return fmt.Errorf("FOLIO_SCENE_FPS must be > 0, got %d", c.SceneFPS)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("FOLIO_SESSION_TTL must be > 0, got %v", c.SessionTTL)
	}
	if c.LocalPassphrase == "" {
		return fmt.Errorf("FOLIO_LOCAL_PASSPHRASE must not be empty")
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
