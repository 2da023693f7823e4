package cmd

import (
	"bufio"
	"context"
	"strings"
	"time"

	"leverage/worker/quoter"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "read target leverages from stdin and print debounced quotes",
	Long: `watch reads one target leverage per line, optionally followed by a deposit
amount. Quotes are printed once input has been quiet for quote.debounce, results
of superseded inputs are never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(signal.WithContext(cmd.Context()))
		defer cancel()
		log := logger.FromContext(ctx).WithField("cmd", "watch")

		req, err := positionRequest(cmd.Flags())
		if err != nil {
			return err
		}

		marketSrv := mustProvideMarketDataService()
		q := provideQuoter(provideLeverageService(marketSrv), marketSrv)
		quotes := q.Subscribe()

		go func() {
			if err := q.Run(ctx); err != nil {
				log.WithError(err).Debugln("quoter stopped")
			}
		}()

		inputDone := make(chan struct{})
		go func() {
			defer close(inputDone)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				fields := strings.Fields(scanner.Text())
				if len(fields) == 0 {
					continue
				}

				target, err := decimal.NewFromString(fields[0])
				if err != nil {
					log.WithError(err).Warnf("skip target %q", fields[0])
					continue
				}

				r := quoter.Request{Position: *req, Target: target}
				if len(fields) > 1 {
					r.Deposit = fields[1]
				}
				q.Submit(r)
			}
		}()

		var (
			eof   <-chan struct{} = inputDone
			drain <-chan time.Time
		)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-eof:
				// give the last input time to be quoted
				eof = nil
				drain = time.After(cfg.Quote.Debounce + 10*time.Second)
			case <-drain:
				return nil
			case quote := <-quotes:
				if eof == nil {
					cancel()
				}

				if quote.Err != nil {
					cmd.PrintErrf("#%d %s: %v\n", quote.Seq, quote.Target, quote.Err)
					continue
				}

				if err := printJSON(cmd, quote); err != nil {
					return err
				}
			}
		}
	},
}

func init() {
	positionFlags(watchCmd.Flags())
	rootCmd.AddCommand(watchCmd)
}
