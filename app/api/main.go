package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/nftcheckout/app/internal/setup"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/base/metrics"
	bValidator "github.com/x-xyz/nftcheckout/base/validator"
	"github.com/x-xyz/nftcheckout/domain/purchase"
	mmiddleware "github.com/x-xyz/nftcheckout/middleware"
	"github.com/x-xyz/nftcheckout/service/cache/provider/primitive"
	"github.com/x-xyz/nftcheckout/service/events"
	"github.com/x-xyz/nftcheckout/service/fundkit"
	coin_delivery "github.com/x-xyz/nftcheckout/stores/coin/delivery/http"
	hc_delivery "github.com/x-xyz/nftcheckout/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/nftcheckout/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/nftcheckout/stores/healthcheck/usecase"
	nft_delivery "github.com/x-xyz/nftcheckout/stores/nft/delivery/http"
	purchase_usecase "github.com/x-xyz/nftcheckout/stores/purchase/usecase"
	session_delivery "github.com/x-xyz/nftcheckout/stores/session/delivery/http"
	session_usecase "github.com/x-xyz/nftcheckout/stores/session/usecase"
)

var configPath = pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")

func init() {
	pflag.Parse()
	if err := setup.LoadConfig(*configPath); err != nil {
		panic(err)
	}
	if err := setup.Observability(); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	context.WithField("provider", viper.GetString("cache.provider")).Info("init cache")
	cacheProvider, redisCache, closeCache, err := setup.CacheProvider(context)
	if err != nil {
		context.WithField("err", err).Panic("setup.CacheProvider failed")
	}
	defer closeCache()

	// events
	sinks := []events.Sink{events.NewLogSink()}
	if url := viper.GetString("nats.url"); url != "" {
		conn, err := events.ConnectNats(url, viper.GetString("app"))
		if err != nil {
			context.WithField("err", err).Warn("events.ConnectNats failed, events are only logged")
		} else {
			defer conn.Drain()
			sinks = append(sinks, events.NewNatsSink(conn, viper.GetString("nats.prefix")))
		}
	}
	sink := events.Multi(sinks...)

	// construct repository, usecase and delivery
	mode, err := setup.PurchaseMode()
	if err != nil {
		context.WithField("err", err).Panic("setup.PurchaseMode failed")
	}
	builder, err := setup.Builder()
	if err != nil {
		context.WithField("err", err).Panic("setup.Builder failed")
	}
	priceFormatter := setup.PriceFormatter()
	nftUsecase := setup.NftUsecase(cacheProvider)
	orchestrator := purchase_usecase.NewOrchestrator(purchase_usecase.OrchestratorCfg{
		Builder: builder,
		Mode:    mode,
		Sink:    sink,
	})
	sessionUsecase := session_usecase.New(&session_usecase.Config{
		Nft:            nftUsecase,
		CollectionSlug: setup.CollectionSlug(),
		Orchestrator:   orchestrator,
		PriceFormatter: priceFormatter,
		FetchTimeout:   viper.GetDuration("session.fetchTimeout"),
	})

	checkoutCfg := fundkit.DefaultConfig()
	checkoutCfg.ApiKeys.AarcSDK = viper.GetString("fundkit.apikey")
	if mode == purchase.ModeMarketplaceFulfillment {
		checkoutCfg.HeaderText = "Fund Your Wallet to Buy NFT"
	}

	hcRepo := hc_repo.New(setup.CacheService(cacheProvider), redisCache)
	hc := hc_usecase.New(hcRepo)

	priceCache := mmiddleware.CacheHttp(primitive.NewPrimitive("httpCacheMiddleware", 1024*1024), time.Minute)

	hc_delivery.New(e, hc)
	nft_delivery.New(e, nftUsecase, priceFormatter, setup.CollectionSlug())
	coin_delivery.New(e, priceFormatter, priceCache)
	session_delivery.New(e, sessionUsecase, checkoutCfg, sink)

	if viper.GetString("metrics.backend") == metrics.BackendPrometheus {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	// drop sessions of closed tabs
	idle := viper.GetDuration("session.idleTimeout")
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	pruneTicker := time.NewTicker(idle / 2)
	defer pruneTicker.Stop()
	go func() {
		for range pruneTicker.C {
			sessionUsecase.Prune(context, idle)
		}
	}()

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
