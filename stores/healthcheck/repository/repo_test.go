package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/service/cache"
	"github.com/x-xyz/nftcheckout/service/cache/provider/primitive"
	"github.com/x-xyz/nftcheckout/service/redis/mocks"
)

var mockCtx = ctx.Background()

type repoSuite struct {
	suite.Suite
	cache cache.Service
	redis *mocks.Service
}

func TestRepo(t *testing.T) {
	suite.Run(t, new(repoSuite))
}

func (s *repoSuite) SetupTest() {
	s.cache = cache.New(cache.ServiceConfig{
		Pfx:   "healthcheck",
		Cache: primitive.NewPrimitive("healthcheck", 1024*1024),
	})
	s.redis = &mocks.Service{}
}

func (s *repoSuite) TearDownTest() {
	s.redis.AssertExpectations(s.T())
}

func (s *repoSuite) TestPingCache() {
	s.redis.On("Ping", mock.Anything).Return(nil).Once()
	s.NoError(New(s.cache, s.redis).PingCache(mockCtx))

	var ts int64
	s.NoError(s.cache.Get(mockCtx, "testset", &ts))
	s.NotZero(ts)
}

func (s *repoSuite) TestPingRedisFailed() {
	s.redis.On("Ping", mock.Anything).Return(errors.New("conn refused")).Once()
	s.Error(New(s.cache, s.redis).PingCache(mockCtx))
}

func (s *repoSuite) TestWithoutRedis() {
	s.NoError(New(s.cache, nil).PingCache(mockCtx))
}
