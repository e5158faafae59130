package keys

import (
	"strings"
)

const (
	// PfxNftCache is used for prefixing the nft snapshot record
	PfxNftCache = "nftCache"
	// NftSnapshot is the single key the snapshot lives under
	NftSnapshot = "listings"
	// PfxHealthCheck is used for prefixing health check keys
	PfxHealthCheck = "healthcheck"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the cache key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix returns the first component of a key, used as a metric tag
func GetPrefix(key string) string {
	if i := strings.Index(key, ":"); i >= 0 {
		return key[:i]
	}
	return key
}
