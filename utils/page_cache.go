package utils

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

// NoCache is the default for all end-points, cached pages override it
func NoCache(c *gin.Context) {
	c.Header("cache-control", "no-cache")
	c.Next()
}

type cachedPage struct {
	status      int
	contentType string
	body        []byte
}

// PageCache keeps rendered GET responses for a fixed time. Changing the data behind a page
// does not evict it, Clear does.
type PageCache struct {
	ttl   time.Duration
	pages *expirable.LRU[string, cachedPage]
	// KeyFunc adds the viewer to the cache key, so personalised pages are never shared
	KeyFunc func(c *gin.Context) string
}

// NewPageCache returns a disabled (pass-through) cache when ttl <= 0
func NewPageCache(ttl time.Duration, size int) *PageCache {
	pc := &PageCache{ttl: ttl}
	if ttl > 0 {
		pc.pages = expirable.NewLRU[string, cachedPage](size, nil, ttl)
	}
	return pc
}

type pageWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *pageWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *pageWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func (pc *PageCache) key(c *gin.Context) string {
	key := c.Request.Method + " " + c.Request.URL.RequestURI()
	if pc.KeyFunc != nil {
		key += " " + pc.KeyFunc(c)
	}
	return key
}

func (pc *PageCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if pc.pages == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := pc.key(c)
		c.Header("cache-control", "private, max-age="+strconv.Itoa(int(pc.ttl.Seconds())))
		if page, ok := pc.pages.Get(key); ok {
			c.Data(page.status, page.contentType, page.body)
			c.Abort()
			return
		}
		w := &pageWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()
		c.Writer = w.ResponseWriter

		if w.Status() != http.StatusOK {
			return
		}
		pc.pages.Add(key, cachedPage{
			status:      w.Status(),
			contentType: w.Header().Get("Content-Type"),
			body:        w.body.Bytes(),
		})
		log.Debug().Str("key", key).Msg("page cached")
	}
}

func (pc *PageCache) Clear() {
	if pc.pages != nil {
		pc.pages.Purge()
	}
}

func (pc *PageCache) Len() int {
	if pc.pages == nil {
		return 0
	}
	return pc.pages.Len()
}
