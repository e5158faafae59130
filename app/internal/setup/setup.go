// Package setup wires the services shared by the api server and the cli
// from viper configuration.
package setup

import (
	"math/big"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/database/redisclient"
	"github.com/x-xyz/nftcheckout/base/env"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/base/metrics"
	pricefomatter "github.com/x-xyz/nftcheckout/base/price_fomatter"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/keys"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/domain/purchase"
	"github.com/x-xyz/nftcheckout/service/cache"
	"github.com/x-xyz/nftcheckout/service/cache/provider"
	"github.com/x-xyz/nftcheckout/service/cache/provider/compound"
	"github.com/x-xyz/nftcheckout/service/cache/provider/leveldb"
	"github.com/x-xyz/nftcheckout/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/nftcheckout/service/cache/provider/redis"
	"github.com/x-xyz/nftcheckout/service/opensea"
	"github.com/x-xyz/nftcheckout/service/redis"
	nft_repository "github.com/x-xyz/nftcheckout/stores/nft/repository"
	nft_usecase "github.com/x-xyz/nftcheckout/stores/nft/usecase"
	purchase_usecase "github.com/x-xyz/nftcheckout/stores/purchase/usecase"
	"golang.org/x/xerrors"
)

const (
	ProviderLevelDB   = "leveldb"
	ProviderPrimitive = "primitive"
	ProviderRedis     = "redis"
	ProviderCompound  = "compound"
)

// LoadConfig reads .env then the yaml at path into the global viper
func LoadConfig(path string) error {
	if err := env.LoadDotEnv(); err != nil {
		return err
	}
	viper.SetConfigType("yaml")
	viper.SetConfigFile(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		return err
	}
	if k := env.OpenseaApiKey(); k != "" {
		viper.Set("opensea.apikey", k)
	}
	if k := env.FundKitApiKey(); k != "" {
		viper.Set("fundkit.apikey", k)
	}
	if p := env.RedisPassword(); p != "" {
		viper.Set("redis_cache.password", p)
	}
	return nil
}

// Observability sets up logging and metrics backends
func Observability() error {
	if err := log.Setup(viper.GetString("log.level"), viper.GetBool("debug")); err != nil {
		return err
	}
	metrics.Setup(metrics.Config{
		Backend:     viper.GetString("metrics.backend"),
		DatadogHost: viper.GetString("metrics.datadogHost"),
		DatadogPort: viper.GetInt("metrics.datadogPort"),
		EnvName:     viper.GetString("env"),
		AppName:     viper.GetString("app"),
		PodName:     env.PodName(),
	})
	return nil
}

// Closer releases what a provider holds open
type Closer func()

// CacheProvider builds the provider named by cache.provider. The redis
// service is nil unless redis is part of the provider.
func CacheProvider(c ctx.Ctx) (provider.Provider, redis.Service, Closer, error) {
	name := viper.GetString("cache.provider")
	switch name {
	case "", ProviderLevelDB:
		db, err := leveldb.Open(viper.GetString("cache.leveldbPath"))
		if err != nil {
			return nil, nil, nil, err
		}
		return leveldb.NewLevelDB(db), nil, func() { db.Close() }, nil
	case ProviderPrimitive:
		return primitive.NewPrimitive("nftcheckout", primitiveSize()), nil, func() {}, nil
	case ProviderRedis, ProviderCompound:
		rs, closer, err := connectRedis(c)
		if err != nil {
			return nil, nil, nil, err
		}
		p := redisProvider.NewRedis(rs)
		if name == ProviderCompound {
			p = compound.NewCompound([]provider.Provider{
				primitive.NewPrimitive("nftcheckout", primitiveSize()),
				p,
			})
		}
		return p, rs, closer, nil
	}
	return nil, nil, nil, xerrors.Errorf("cache.provider %q: %w", name, domain.ErrBadParamInput)
}

func primitiveSize() int {
	if n := viper.GetInt("cache.primitiveSize"); n > 0 {
		return n
	}
	return 16 * 1024 * 1024
}

func connectRedis(c ctx.Ctx) (redis.Service, Closer, error) {
	pool, err := redisclient.Connect(c, redisclient.Config{
		URI:            viper.GetString("redis_cache.uri"),
		Password:       viper.GetString("redis_cache.password"),
		DB:             viper.GetInt("redis_cache.db"),
		PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
		Retries:        viper.GetInt("redis_cache.retries"),
	})
	if err != nil {
		return nil, nil, err
	}
	name := viper.GetString("redis_cache.name")
	if name == "" {
		name = "cache"
	}
	rs := redis.New(name, metrics.New(name), &redis.Pools{Src: pool})
	return rs, func() { pool.Close() }, nil
}

// CacheService is the cache the nft snapshot is stored in
func CacheService(p provider.Provider) cache.Service {
	return cache.New(cache.ServiceConfig{
		Pfx:   keys.PfxNftCache,
		Cache: p,
	})
}

func OpenseaClient() opensea.Client {
	return opensea.NewClient(&opensea.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    viper.GetDuration("opensea.timeout"),
		Apikey:     viper.GetString("opensea.apikey"),
		BaseUrl:    viper.GetString("opensea.baseUrl"),
	})
}

func CollectionSlug() string {
	if s := viper.GetString("collection.slug"); s != "" {
		return s
	}
	return domain.DefaultCollectionSlug
}

func NftUsecase(p provider.Provider) nft.Usecase {
	return nft_usecase.New(&nft_usecase.Config{
		Opensea:  OpenseaClient(),
		Cache:    nft_repository.NewCacheStore(CacheService(p), viper.GetDuration("cache.expiry")),
		Chain:    viper.GetString("collection.chain"),
		Contract: domain.Address(viper.GetString("collection.contract")).ToLower(),
		Limit:    viper.GetInt("collection.limit"),
		Workers:  viper.GetInt("collection.workers"),
	})
}

func decimalOf(key string) decimal.Decimal {
	s := viper.GetString(key)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Log().WithFields(log.Fields{"key": key, "err": err}).Warn("decimal.NewFromString failed")
		return decimal.Zero
	}
	return d
}

func PriceFormatter() pricefomatter.PriceFormatter {
	return pricefomatter.NewPriceFormatter(&pricefomatter.PriceFormatterCfg{
		EthToBrettRate: decimalOf("price.ethToBrettRate"),
		DisplayPrice:   decimalOf("price.displayPrice"),
	})
}

func PurchaseMode() (purchase.Mode, error) {
	s := viper.GetString("purchase.mode")
	if s == "" {
		return purchase.ModeMarketplaceFulfillment, nil
	}
	return purchase.ParseMode(s)
}

func Builder() (purchase.Builder, error) {
	cfg := purchase_usecase.BuilderCfg{
		SeaportContract:    domain.Address(viper.GetString("purchase.seaportContract")).ToLower(),
		CollectionContract: domain.Address(viper.GetString("collection.contract")).ToLower(),
		MarketplaceName:    viper.GetString("purchase.marketplaceName"),
		MintingContract:    domain.Address(viper.GetString("purchase.mintingContract")).ToLower(),
		MintName:           viper.GetString("purchase.mintName"),
		MintPrice:          decimalOf("purchase.mintPrice"),
		LogoURI:            viper.GetString("purchase.logoURI"),
	}
	if token := viper.GetString("purchase.mintToken.address"); token != "" {
		amount, ok := new(big.Int).SetString(viper.GetString("purchase.mintToken.amount"), 0)
		if !ok {
			return nil, xerrors.Errorf("purchase.mintToken.amount: %w", domain.ErrInvalidNumberFormat)
		}
		cfg.MintToken = &purchase_usecase.MintToken{
			Token:  domain.Address(token).ToLower(),
			Amount: amount,
		}
	}
	return purchase_usecase.NewBuilder(cfg), nil
}
