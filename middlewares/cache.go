package middlewares

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type cachedBody struct {
	Status int
	Header map[string][]string
	Body   []byte
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// CacheKeyFrom maps a GET request to a namespaced Redis key so writes can
// purge list and item entries separately. Non-GET requests are not cached.
func CacheKeyFrom(c *gin.Context) (string, string) {
	method := c.Request.Method
	path := c.FullPath()
	rawq := c.Request.URL.RawQuery

	if method != "GET" || path == "" {
		return "", ""
	}

	// Only the public read endpoints are cached; viewer-specific reads
	// (aggregates, history) must not be shared between sessions.
	switch path {
	case "/events/:id":
		id := c.Param("id")
		return "cache:events:item:" + sha1Hex("GET|/events/"+id), "item"
	case "/events":
		return "cache:events:list:" + sha1Hex("GET|/events|"+rawq), "list"
	case "/announcements":
		return "cache:announcements:list:" + sha1Hex("GET|/announcements|"+rawq), "list"
	case "/clubs", "/clubs/:id":
		return "cache:clubs:" + sha1Hex(method + "|" + path + "|" + c.Param("id")), "item"
	default:
		return "", ""
	}
}

// ResponseCache serves cached 2xx GET responses from Redis and records
// misses. Hits carry X-Cache: HIT, fresh responses X-Cache: MISS.
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _ := CacheKeyFrom(c)
		if key == "" {
			c.Next()
			return
		}

		if b, err := rdb.Get(context.Background(), key).Bytes(); err == nil && len(b) > 0 {
			var hit cachedBody
			if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
				for k, vals := range hit.Header {
					for _, v := range vals {
						c.Writer.Header().Add(k, v)
					}
				}
				c.Writer.Header().Set("X-Cache", "HIT")
				c.Status(hit.Status)
				_, _ = c.Writer.Write(hit.Body)
				c.Abort()
				return
			}
		}

		buf := &bytes.Buffer{}
		bw := &bufferedWriter{ResponseWriter: c.Writer, buf: buf}
		c.Writer = bw

		// Headers go out with the handler's first write, so the marker must
		// be set before c.Next.
		c.Writer.Header().Set("X-Cache", "MISS")

		c.Next()

		// Only cache 2xx.
		if bw.Status() >= 200 && bw.Status() < 300 {
			item := cachedBody{
				Status: bw.Status(),
				Header: c.Writer.Header(),
				Body:   buf.Bytes(),
			}

			var o bytes.Buffer
			if err := gob.NewEncoder(&o).Encode(item); err == nil {
				_ = rdb.Set(context.Background(), key, o.Bytes(), ttl).Err()
			}
		}
	}
}

type bufferedWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}
