package middleware

import (
	"bytes"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/metrics"
	"github.com/x-xyz/nftcheckout/service/cache"
	"github.com/x-xyz/nftcheckout/service/cache/provider"
)

const (
	cacheMiddlewarePfx = "httpCacheMiddleware"
	// HeaderXCache tells whether a response was served from cache
	HeaderXCache = "X-Cache"
	// bodies above this are passed through uncached, the local provider
	// cannot hold large entries
	maxCachedBody = 64 * 1024
)

// Response is the cached response data structure.
type Response struct {
	Status      int
	ContentType string
	Value       []byte
}

// recorder copies the body written to the client, up to maxCachedBody
type recorder struct {
	http.ResponseWriter
	status   int
	body     bytes.Buffer
	overflow bool
}

func (w *recorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(b []byte) (int, error) {
	if !w.overflow {
		if w.body.Len()+len(b) > maxCachedBody {
			w.overflow = true
			w.body.Reset()
		} else {
			w.body.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

func (w *recorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, param := range params {
		sort.Strings(param)
	}
	// Encode sorts by key
	return generateKey(u.Path + "?" + params.Encode())
}

func generateKey(s string) string {
	hash := fnv.New64a()
	io.WriteString(hash, s)
	return strconv.FormatUint(hash.Sum64(), 36)
}

// CacheHttp caches successful GET responses in p for ttl, keyed by path and
// sorted query params
func CacheHttp(p provider.Provider, ttl time.Duration) echo.MiddlewareFunc {
	cacheService := cache.New(cache.ServiceConfig{
		Ttl:   ttl,
		Pfx:   cacheMiddlewarePfx,
		Cache: p,
	})
	met := metrics.New("http.cache")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Get("ctx").(ctx.Ctx)
			key := cacheKey(c.Request().URL)

			response := Response{}
			if err := cacheService.Get(ctx, key, &response); err == nil {
				met.BumpSum("hit", 1, "path", c.Path())
				c.Response().Header().Set(HeaderXCache, "hit")
				return c.Blob(response.Status, response.ContentType, response.Value)
			} else if err != cache.ErrNotFound {
				ctx.WithField("err", err).Error("cacheService.Get failed")
			}
			met.BumpSum("miss", 1, "path", c.Path())

			rec := &recorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec
			c.Response().Header().Set(HeaderXCache, "miss")
			if err := next(c); err != nil {
				c.Error(err)
			}
			c.Response().Writer = rec.ResponseWriter

			if rec.status >= 300 || rec.overflow {
				return nil
			}
			if err := cacheService.Set(ctx, key, Response{
				Status:      rec.status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Value:       rec.body.Bytes(),
			}); err != nil {
				ctx.WithField("err", err).Error("cacheService.Set failed")
			}
			return nil
		}
	}
}
