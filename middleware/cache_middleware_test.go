package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/service/cache/provider"
	"github.com/x-xyz/nftcheckout/service/cache/provider/primitive"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	provider provider.Provider
}

func (s *cacheMiddlewareSuite) SetupTest() {
	s.provider = primitive.NewPrimitive("httpCacheMiddleware", 1024*1024)
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) serve(target string, res string, status int) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())
	h := func(c echo.Context) error {
		return c.String(status, res)
	}
	s.Require().NoError(CacheHttp(s.provider, 30*time.Second)(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheMiddleware() {
	rec := s.serve("/prices/brett?eth=1", "first", http.StatusOK)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("first", rec.Body.String())

	s.Equal("miss", rec.Header().Get(HeaderXCache))

	rec = s.serve("/prices/brett?eth=1", "second", http.StatusOK)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("first", rec.Body.String())
	s.Equal("hit", rec.Header().Get(HeaderXCache))
	s.Contains(rec.Header().Get(echo.HeaderContentType), "text/plain")

	key := generateKey("/prices/brett?eth=1")
	_, _, err := s.provider.Get(ctx.Background(), "httpCacheMiddleware:"+key)
	s.NoError(err)

	rec = s.serve("/prices/brett?eth=2", "third", http.StatusOK)
	s.Equal("third", rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestSkipErrorResponse() {
	rec := s.serve("/prices/brett?eth=x", "bad", http.StatusBadRequest)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.serve("/prices/brett?eth=x", "fixed", http.StatusOK)
	s.Equal("fixed", rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestSortedParams() {
	s.serve("/x?b=2&a=1", "first", http.StatusOK)
	rec := s.serve("/x?a=1&b=2", "second", http.StatusOK)
	s.Equal("first", rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestLargeBodyNotCached() {
	large := strings.Repeat("x", maxCachedBody+1)
	rec := s.serve("/nfts", large, http.StatusOK)
	s.Equal(large, rec.Body.String())

	rec = s.serve("/nfts", "small", http.StatusOK)
	s.Equal("small", rec.Body.String())
}
