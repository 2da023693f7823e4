package cmd

import (
	"sync"

	"leverage/worker"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "keep market data of the configured pairs warm",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		marketSrv := mustProvideMarketDataService()

		workers := []worker.Worker{
			provideMarketSyncWorker(marketSrv),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				if err := worker.Run(ctx); err != nil {
					log.WithError(err).Infoln("worker stopped")
				}
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
