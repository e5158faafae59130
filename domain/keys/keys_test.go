package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedisKey(t *testing.T) {
	req := require.New(t)
	k := RedisKey(PfxNftCache, NftSnapshot)
	req.Equal("nftCache:listings", k)
	req.Equal(PfxNftCache, GetPrefix(k))
	req.Equal("plain", GetPrefix("plain"))
}
