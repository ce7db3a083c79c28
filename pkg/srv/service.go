package srv

import (
	"context"
	"errors"
	"sync"

	"github.com/sandevgo/ailean/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Run starts every service and blocks until ctx is done or one of them fails.
// Start must return once its ctx is done. Services are shut down in reverse
// order after every Start has returned; the first start error is returned.
func Run(ctx context.Context, services []Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg      sync.WaitGroup
		once    sync.Once
		initErr error
	)

	for _, service := range services {
		wg.Add(1)
		go func(service Service) {
			defer wg.Done()
			if err := service.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.FromCtx(ctx).Error().Err(err).Msgf("%T failed", service)
				once.Do(func() { initErr = err })
				cancel()
			}
		}(service)
	}

	<-ctx.Done()
	wg.Wait()
	shutdown(ctx, services)
	return initErr
}

func shutdown(ctx context.Context, services []Service) {
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
