package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invofin/board_backend/internal/middleware"
)

const eventsTestSecret = "events-test-secret"

// fakeCapturer records captured events for assertions.
type fakeCapturer struct {
	enabled  bool
	captured []capturedEvent
}

type capturedEvent struct {
	userID     string
	event      string
	properties map[string]any
}

func (f *fakeCapturer) Enabled() bool { return f.enabled }

func (f *fakeCapturer) Capture(userID, event string, properties map[string]any) {
	f.captured = append(f.captured, capturedEvent{userID: userID, event: event, properties: properties})
}

func eventsTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    "board-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(eventsTestSecret))
	require.NoError(t, err)
	return signed
}

func eventsTestRouter(tracker middleware.EventCapturer, entryStatus int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.TrackEvents(tracker))
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(eventsTestSecret))
	v1.GET("/entries/:entry_id", func(c *gin.Context) {
		c.JSON(entryStatus, gin.H{"entry_id": c.Param("entry_id")})
	})
	return r
}

func TestTrackEvents_CapturesSuccessfulAuthenticatedRequest(t *testing.T) {
	tracker := &fakeCapturer{enabled: true}
	router := eventsTestRouter(tracker, http.StatusOK)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/entries/abc-123", nil)
	req.Header.Set("Authorization", "Bearer "+eventsTestToken(t, "user-42"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, tracker.captured, 1)
	got := tracker.captured[0]
	assert.Equal(t, "user-42", got.userID)
	assert.Equal(t, "api_v1_entries_:entry_id", got.event)
	assert.Equal(t, http.MethodGet, got.properties["method"])
	assert.Equal(t, http.StatusOK, got.properties["status_code"])
	assert.Equal(t, "abc-123", got.properties["entry_id"])
}

func TestTrackEvents_SkipsFailedRequests(t *testing.T) {
	tracker := &fakeCapturer{enabled: true}
	router := eventsTestRouter(tracker, http.StatusNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/entries/missing", nil)
	req.Header.Set("Authorization", "Bearer "+eventsTestToken(t, "user-42"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, tracker.captured)
}

func TestTrackEvents_SkipsAnonymousRequests(t *testing.T) {
	tracker := &fakeCapturer{enabled: true}
	router := eventsTestRouter(tracker, http.StatusOK)

	// No bearer token: auth middleware rejects before a user is attached.
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/entries/abc-123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, tracker.captured)
}

func TestTrackEvents_SkipsUntrackedPathsAndDisabledTracker(t *testing.T) {
	tracker := &fakeCapturer{enabled: true}
	router := eventsTestRouter(tracker, http.StatusOK)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, tracker.captured)

	disabled := &fakeCapturer{enabled: false}
	router = eventsTestRouter(disabled, http.StatusOK)
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/entries/abc-123", nil)
	req.Header.Set("Authorization", "Bearer "+eventsTestToken(t, "user-42"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, disabled.captured)
}
