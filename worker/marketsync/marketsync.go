package marketsync

import (
	"context"
	"sync"
	"time"

	"leverage/core"
	"leverage/pkg/concurrency"
	"leverage/worker"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

// Worker keeps the market data cache warm for the configured pairs
type Worker struct {
	worker.TickWorker
	Pairs     []core.Pair
	MarketSrv core.IMarketDataService
	limit     int
}

// New new market sync worker
func New(cfg core.Sync, marketSrv core.IMarketDataService) *Worker {
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    interval,
			ErrDelay: interval / 2,
		},
		Pairs:     cfg.Pairs,
		MarketSrv: marketSrv,
		limit:     8,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "marketsync")

	if len(w.Pairs) == 0 {
		log.Debugln("no pair configured")
		return nil
	}

	addresses := make(map[common.Address]bool)
	for _, p := range w.Pairs {
		addresses[p.Collateral] = true
		addresses[p.Debt] = true
	}

	var (
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	golimit := concurrency.NewGoLimit(w.limit)
	wg := sync.WaitGroup{}
	for address := range addresses {
		golimit.Add()
		wg.Add(1)
		go func(address common.Address) {
			defer wg.Done()
			defer golimit.Done()

			if _, err := w.MarketSrv.Token(ctx, address); err != nil {
				log.WithError(err).Errorln("sync token", address.Hex())
				fail(err)
			}

			if _, err := w.MarketSrv.Reserve(ctx, address); err != nil {
				log.WithError(err).Errorln("sync reserve", address.Hex())
				fail(err)
			}
		}(address)
	}
	wg.Wait()

	for _, p := range w.Pairs {
		l, err := w.MarketSrv.MaxLeverage(ctx, p.Collateral, p.Debt)
		if err != nil {
			log.WithError(err).Errorln("max leverage", p.Collateral.Hex(), p.Debt.Hex())
			fail(err)
			continue
		}

		log.Debugln("max leverage", p.Collateral.Hex(), p.Debt.Hex(), l)
	}

	return firstErr
}
