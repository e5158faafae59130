package usecase

import (
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/metrics"
	hcdomain "github.com/x-xyz/nftcheckout/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
	met  metrics.Service
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
		met:  metrics.New("healthcheck"),
	}
}

func (im *impl) Check(context ctx.Ctx) error {
	if err := im.repo.PingCache(context); err != nil {
		im.met.BumpSum("unhealthy", 1)
		return err
	}
	return nil
}
