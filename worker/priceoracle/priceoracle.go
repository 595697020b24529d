package priceoracle

import (
	"context"
	"time"

	"liquidator/core"
	"liquidator/worker"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/pkg/errors"
)

const checkpointKey = "price_oracle_checkpoint"

// Worker refreshes the eth rates from the price oracle
type Worker struct {
	worker.TickWorker
	rates    core.IRateStore
	tokens   core.ITokenStore
	oracle   core.IPriceOracleService
	property property.Store
	clock    clock.Clock
	cfg      core.PriceOracle
}

// New new price oracle worker
func New(
	rates core.IRateStore,
	tokens core.ITokenStore,
	oracle core.IPriceOracleService,
	property property.Store,
	clock clock.Clock,
	cfg core.PriceOracle,
) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}

	return &Worker{
		TickWorker: worker.TickWorker{Delay: time.Second, ErrDelay: 5 * time.Second},
		rates:      rates,
		tokens:     tokens,
		oracle:     oracle,
		property:   property,
		clock:      clock,
		cfg:        cfg,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, w.onWork)
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	now := w.clock.Now()
	if now.Sub(v.Time()) < w.cfg.Interval {
		return worker.ErrNoWork
	}

	if err := w.refresh(ctx, now); err != nil {
		return err
	}

	if err := w.property.Save(ctx, checkpointKey, now); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}

// refresh pulls one ticker per currency and stores the changed rates
func (w *Worker) refresh(ctx context.Context, now time.Time) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	eth, err := w.oracle.PullPriceTicker(ctx, w.cfg.ETHAssetID, now)
	if err != nil {
		log.WithError(err).Errorln("oracle.PullPriceTicker", w.cfg.ETHAssetID)
		return err
	}

	if !eth.Price.IsPositive() {
		return errors.Errorf("invalid eth price %s", eth.Price)
	}

	rates, err := w.rates.ListETHRates(ctx)
	if err != nil {
		log.WithError(err).Errorln("rates.ListETHRates")
		return err
	}

	for _, rate := range rates {
		log := log.WithField("currency", rate.CurrencyID)

		token, err := w.tokens.Find(ctx, rate.CurrencyID)
		if err != nil {
			log.WithError(err).Errorln("tokens.Find")
			return err
		}

		if token.CurrencyID != rate.CurrencyID {
			log.Infoln("rate without token, skip")
			continue
		}

		assetID := token.UnderlyingAssetID
		if assetID == "" {
			assetID = token.AssetID
		}

		ticker, err := w.oracle.PullPriceTicker(ctx, assetID, now)
		if err != nil {
			log.WithError(err).Errorln("oracle.PullPriceTicker", assetID)
			continue
		}

		if !ticker.Price.IsPositive() {
			log.Errorln("invalid ticker price:", ticker.Symbol, ":", ticker.Price)
			continue
		}

		next := ticker.Price.Mul(rate.RateDecimals).Div(eth.Price).Truncate(0)
		if next.Equal(rate.Rate) {
			continue
		}

		rate.Rate = next
		if err := w.rates.UpdateRate(ctx, rate); err != nil {
			log.WithError(err).Errorln("rates.UpdateRate")
			continue
		}

		log.WithField("rate", next).Infoln("rate updated")
	}

	return nil
}
