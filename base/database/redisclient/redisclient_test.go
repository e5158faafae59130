package redisclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/x-xyz/nftcheckout/base/ctx"
)

func TestNewPool(t *testing.T) {
	p := newPool(Config{URI: "localhost:6379"})
	require.Equal(t, 8, p.MaxIdle)
	require.Equal(t, 0, p.MaxActive)

	p = newPool(Config{URI: "localhost:6379", PoolMultiplier: 4})
	require.Greater(t, p.MaxActive, p.MaxIdle)
}

func TestConnectCancelled(t *testing.T) {
	c, cancel := ctx.WithTimeout(ctx.Background(), 50*time.Millisecond)
	defer cancel()
	// nothing listens on port 1
	_, err := Connect(c, Config{URI: "127.0.0.1:1", Retries: 1})
	require.Error(t, err)
}
