package env

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads key=value pairs from the given files (".env" when none)
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}
	return nil
}

// PodName example: k8ssta-nftcheckout-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// OpenseaApiKey is sent as X-API-KEY to the opensea api
func OpenseaApiKey() string {
	return os.Getenv("OPENSEA_API_KEY")
}

// FundKitApiKey is handed to the checkout widget
func FundKitApiKey() string {
	return os.Getenv("FUNDKIT_API_KEY")
}

// RedisPassword overrides redis_cache.password when set
func RedisPassword() string {
	return os.Getenv("REDIS_PASSWORD")
}
