package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// EventCapturer queues product analytics events. Satisfied by
// utils.EventTracker.
type EventCapturer interface {
	Enabled() bool
	Capture(userID, event string, properties map[string]any)
}

// untrackedPaths are probes and static surfaces that carry no product signal.
var untrackedPaths = map[string]bool{
	"/health": true,
	"/":       true,
}

// TrackEvents emits one analytics event per successful authenticated request,
// named after the matched route. Failed requests and anonymous traffic are
// not tracked.
func TrackEvents(tracker EventCapturer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || !tracker.Enabled() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= 400 {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		route := c.FullPath()
		if route == "" || strings.HasPrefix(route, "/swagger") {
			return
		}
		eventName := strings.TrimPrefix(strings.ReplaceAll(route, "/", "_"), "_")

		properties := map[string]any{
			"method":      c.Request.Method,
			"path":        route,
			"status_code": c.Writer.Status(),
		}
		for _, p := range c.Params {
			properties[p.Key] = p.Value
		}

		tracker.Capture(userID, eventName, properties)
	}
}
