package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/folio/internal/content"
	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/scene"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	Mode        string `json:"mode,omitempty"`
	Topics      *int   `json:"topics,omitempty"`
	News        *int   `json:"news,omitempty"`
	Activities  *int   `json:"activities,omitempty"`
	LastRefresh string `json:"last_refresh,omitempty"`
	Sessions    *int   `json:"sessions,omitempty"`
	Shape       string `json:"shape,omitempty"`
	Points      *int   `json:"points,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	StoreMode  string                     `json:"store_mode"`
	Health     string                     `json:"health"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the store mode, the hosted store status, record counts,
// the last refresh and the scene state.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.State.Snapshot()
		topics, news, activities := len(snap.Data.Topics), len(snap.Data.News), len(snap.Data.Activities)
		sessions := d.State.CachedSessions()

		lastRefresh := "never"
		if !snap.RefreshedAt.IsZero() {
			lastRefresh = snap.RefreshedAt.Format("2006-01-02 15:04:05")
		}

		contentStatus := componentStatus{
			OK:          snap.Err == "",
			Mode:        string(d.State.Mode()),
			Topics:      &topics,
			News:        &news,
			Activities:  &activities,
			LastRefresh: lastRefresh,
			Sessions:    &sessions,
			Error:       snap.Err,
		}
		if d.State.Loading() {
			contentStatus.Impact = "loading"
		}

		components := map[string]componentStatus{
			"content": contentStatus,
			"redis":   checkRedis(d),
		}
		if d.Scene != nil {
			points := d.Scene.Renderer().Count()
			components["scene"] = componentStatus{
				OK:     true,
				Shape:  string(scene.ShapeForRoute(d.Scene.Route())),
				Points: &points,
			}
		}

		writeJSON(d, w, http.StatusOK, infraResponse{
			StoreMode:  string(d.State.Mode()),
			Health:     determineHealth(d.State.Mode(), components),
			Components: components,
		})
	}
}

func determineHealth(mode content.Mode, components map[string]componentStatus) string {
	if c, ok := components["content"]; ok && !c.OK {
		return "degraded" // last refresh failed or served the fallback copy
	}
	if mode == content.ModeHosted {
		if redis, ok := components["redis"]; ok && !redis.OK {
			return "degraded"
		}
	}
	return "ok"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "local-fallback-store",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "unreachable",
			Impact: "serving-fallback-copy",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:   true,
		Mode: "hosted",
	}
}
