package oracle

import (
	"context"
	"fmt"
	"time"

	"liquidator/core"
	"liquidator/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/pkg/errors"
)

// PriceService price service
type PriceService struct {
	EndPoint string
}

// New new oracle price service
func New(cfg core.PriceOracle) core.IPriceOracleService {
	return &PriceService{
		EndPoint: cfg.EndPoint,
	}
}

// PullPriceTicker pull price ticker
func (s *PriceService) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.EndPoint, assetID, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", url)

	var price core.PriceTicker
	if _, err := resthttp.Execute(resthttp.Request(ctx), "GET", url, nil, &price); err != nil {
		return nil, err
	}

	if !price.Price.IsPositive() {
		return nil, errors.Errorf("invalid price %s of %s", price.Price, assetID)
	}

	return &price, nil
}
