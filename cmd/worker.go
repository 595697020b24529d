package cmd

import (
	"sync"

	"liquidator/worker"
	"liquidator/worker/cashier"
	"liquidator/worker/payee"
	"liquidator/worker/priceoracle"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run payee, cashier and price oracle workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		batch, _ := cmd.Flags().GetInt("cashier.batch")
		capacity, _ := cmd.Flags().GetInt64("cashier.capacity")
		if cmd.Flags().Changed("cashier.batch") {
			cfg.Cashier.Batch = batch
		}

		if cmd.Flags().Changed("cashier.capacity") {
			cfg.Cashier.Capacity = capacity
		}

		wallets := provideWalletService()
		tokenz := provideTokenService(database)

		workers := []worker.Worker{
			payee.New(
				wallets,
				providePropertyStore(database),
				provideTransferStore(database),
				provideAccountContextStore(database),
				tokenz,
				provideBalanceService(database),
				provideSettlementStore(database),
			),
			cashier.New(
				provideTransferStore(database),
				wallets,
				cashier.Config{Batch: cfg.Cashier.Batch, Capacity: cfg.Cashier.Capacity},
			),
			priceoracle.New(
				provideRateStore(database),
				provideTokenStore(database),
				providePriceService(),
				providePropertyStore(database),
				provideClock(),
				cfg.PriceOracle,
			),
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
	workerCmd.Flags().Int("cashier.batch", 100, "custom batch for worker cashier")
	workerCmd.Flags().Int64("cashier.capacity", 1, "custom capacity for worker cashier")
}
