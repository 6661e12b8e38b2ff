package utils

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newCachedRouter(pc *PageCache, counter *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NoCache)
	router.GET("/", pc.Handler(), func(c *gin.Context) {
		*counter++
		c.String(http.StatusOK, "render "+strconv.Itoa(*counter))
	})
	router.GET("/missing", pc.Handler(), func(c *gin.Context) {
		*counter++
		c.String(http.StatusNotFound, "missing")
	})
	router.GET("/plain", func(c *gin.Context) {
		c.String(http.StatusOK, "plain")
	})
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestPageCache(t *testing.T) {
	counter := 0
	pc := NewPageCache(time.Minute, 10)
	router := newCachedRouter(pc, &counter)

	first := get(router, "/")
	second := get(router, "/")
	if first.Body.String() != "render 1" || second.Body.String() != "render 1" {
		t.Fatalf("bodies = %q, %q, want the cached first render", first.Body.String(), second.Body.String())
	}
	if second.Header().Get("Content-Type") != first.Header().Get("Content-Type") {
		t.Errorf("content type changed: %q", second.Header().Get("Content-Type"))
	}
	if got := second.Header().Get("cache-control"); got != "private, max-age=60" {
		t.Errorf("cache-control = %q", got)
	}
	// Different query string, different page
	if w := get(router, "/?page=2"); w.Body.String() != "render 2" {
		t.Errorf("/?page=2 = %q", w.Body.String())
	}
	if pc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", pc.Len())
	}

	pc.Clear()
	if w := get(router, "/"); w.Body.String() != "render 3" {
		t.Errorf("after Clear() = %q, want a fresh render", w.Body.String())
	}
}

func TestPageCache_skipsErrors(t *testing.T) {
	counter := 0
	pc := NewPageCache(time.Minute, 10)
	router := newCachedRouter(pc, &counter)
	get(router, "/missing")
	get(router, "/missing")
	if counter != 2 || pc.Len() != 0 {
		t.Errorf("counter = %d, Len() = %d: error responses must not be cached", counter, pc.Len())
	}
	if got := get(router, "/plain").Header().Get("cache-control"); got != "no-cache" {
		t.Errorf("cache-control for uncached route = %q", got)
	}
}

func TestPageCache_expires(t *testing.T) {
	counter := 0
	pc := NewPageCache(50*time.Millisecond, 10)
	router := newCachedRouter(pc, &counter)
	get(router, "/")
	time.Sleep(120 * time.Millisecond)
	if w := get(router, "/"); w.Body.String() != "render 2" {
		t.Errorf("after expiry = %q, want a fresh render", w.Body.String())
	}
}

func TestPageCache_keyFunc(t *testing.T) {
	counter := 0
	viewer := "1"
	pc := NewPageCache(time.Minute, 10)
	pc.KeyFunc = func(c *gin.Context) string { return viewer }
	router := newCachedRouter(pc, &counter)
	get(router, "/")
	viewer = "2"
	if w := get(router, "/"); w.Body.String() != "render 2" {
		t.Errorf("other viewer got %q, want own render", w.Body.String())
	}
}

func TestPageCache_disabled(t *testing.T) {
	counter := 0
	pc := NewPageCache(0, 10)
	router := newCachedRouter(pc, &counter)
	get(router, "/")
	if w := get(router, "/"); w.Body.String() != "render 2" {
		t.Errorf("disabled cache served %q", w.Body.String())
	}
	pc.Clear()
	if pc.Len() != 0 {
		t.Error("disabled cache has entries")
	}
}
