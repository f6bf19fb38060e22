package middlewares_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"campusevents/middlewares"
)

func cacheServer(t *testing.T) (*gin.Engine, *redis.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	t.Cleanup(func() { mr.Close() })
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s := gin.New()
	s.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	return s, rdb
}

func TestResponseCache_MissThenHit(t *testing.T) {
	s, _ := cacheServer(t)
	s.GET("/events", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": 1})
	})

	w1 := httptest.NewRecorder()
	s.ServeHTTP(w1, httptest.NewRequest("GET", "/events", nil))
	if w1.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("want MISS, got %q", w1.Header().Get("X-Cache"))
	}

	w2 := httptest.NewRecorder()
	s.ServeHTTP(w2, httptest.NewRequest("GET", "/events", nil))
	if w2.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("want HIT, got %q", w2.Header().Get("X-Cache"))
	}
	if w2.Body.String() != w1.Body.String() {
		t.Fatalf("cached body mismatch: %q vs %q", w2.Body.String(), w1.Body.String())
	}
}

// The MISS marker must be set before the handler writes the body; headers
// added afterwards never reach the client. Result() snapshots the headers
// at WriteHeader time, so it sees what actually went on the wire.
func TestResponseCache_MissHeaderSentWithResponse(t *testing.T) {
	s, _ := cacheServer(t)
	s.GET("/events", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": 1})
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest("GET", "/events", nil))
	if got := w.Result().Header.Get("X-Cache"); got != "MISS" {
		t.Fatalf("X-Cache must be on the wire with the first write, got %q", got)
	}
}

func TestResponseCache_ViewerRoutesNotCached(t *testing.T) {
	s, _ := cacheServer(t)
	s.GET("/events/:id/registrations", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": 1})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest("GET", "/events/e1/registrations", nil))
		if got := w.Header().Get("X-Cache"); got != "" {
			t.Fatalf("aggregate reads must bypass the cache, got X-Cache=%q", got)
		}
	}
}

func TestResponseCache_ErrorsNotCached(t *testing.T) {
	s, _ := cacheServer(t)
	s.GET("/events", func(c *gin.Context) {
		c.JSON(500, gin.H{"message": "boom"})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest("GET", "/events", nil))
		if w.Header().Get("X-Cache") == "HIT" {
			t.Fatalf("5xx responses must not be cached")
		}
	}
}
