package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"liquidator/core"
	"liquidator/handler/request"
	"liquidator/internal/memstore"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	liquidator = "1c7e4f2a-8b3d-4e6f-9a0b-2c4d6e8f0a1b"
	account    = "7f3a9b1c-2d4e-4f60-8a1b-3c5d7e9f1a2b"
	trace      = "2e8c4a6b-0d1f-4b3e-8c5a-7e9b1d3f5a60"
)

type fakeService struct {
	core.ILiquidationService
	err  error
	reqs []*core.LiquidationRequest
}

func (s *fakeService) result(req *core.LiquidationRequest) (*core.LiquidationResult, error) {
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}

	return &core.LiquidationResult{
		Liquidator:               req.Liquidator,
		Account:                  req.Account,
		CollateralAssetToSell:    decimal.NewFromInt(100000),
		LocalAssetFromLiquidator: decimal.NewFromInt(92592),
	}, nil
}

func (s *fakeService) QuoteCollateral(_ context.Context, req *core.LiquidationRequest) (*core.LiquidationResult, error) {
	return s.result(req)
}

func (s *fakeService) LiquidateCollateral(_ context.Context, req *core.LiquidationRequest) (*core.LiquidationResult, error) {
	return s.result(req)
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func serveAs(h http.Handler, user *core.User, method, target, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r = r.WithContext(request.WithUser(r.Context(), user))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestQuote(t *testing.T) {
	service := &fakeService{}
	h := Handle(service, memstore.NewLiquidations())

	w := serve(h, "GET", "/liquidations/quote?liquidator="+liquidator+"&account="+account+"&local_currency=1&collateral_currency=2", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result core.LiquidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "92592", result.LocalAssetFromLiquidator.String())
	assert.Equal(t, uint16(2), service.reqs[0].CollateralCurrency)

	w = serve(h, "GET", "/liquidations/quote?liquidator=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, service.reqs, 1)
}

func TestLiquidate(t *testing.T) {
	const other = "5d9f1b3e-7a2c-4d6e-8f0a-b1c3d5e7f9a2"
	user := &core.User{MixinID: liquidator}
	body := `{"account":"` + account + `","local_currency":1,"collateral_currency":2}`

	t.Run("login required", func(t *testing.T) {
		service := &fakeService{}
		h := Handle(service, memstore.NewLiquidations())

		w := serve(h, "POST", "/liquidations", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, service.reqs)
	})

	t.Run("liquidates as the caller", func(t *testing.T) {
		service := &fakeService{}
		h := Handle(service, memstore.NewLiquidations())

		w := serveAs(h, user, "POST", "/liquidations", body)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Len(t, service.reqs, 1)
		assert.Equal(t, liquidator, service.reqs[0].Liquidator)
	})

	t.Run("liquidator in the body is ignored", func(t *testing.T) {
		service := &fakeService{}
		h := Handle(service, memstore.NewLiquidations())

		spoofed := `{"liquidator":"` + other + `","account":"` + account + `","local_currency":1,"collateral_currency":2}`
		w := serveAs(h, user, "POST", "/liquidations", spoofed)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Len(t, service.reqs, 1)
		assert.Equal(t, liquidator, service.reqs[0].Liquidator)
	})

	t.Run("service error", func(t *testing.T) {
		h := Handle(&fakeService{err: errors.Wrap(core.ErrSufficientCollateral, "freecollateral/sufficient-collateral")}, memstore.NewLiquidations())
		w := serveAs(h, user, "POST", "/liquidations", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "100105")
	})
}

func TestLiquidations(t *testing.T) {
	ctx := context.Background()
	liquidations := memstore.NewLiquidations()
	require.NoError(t, liquidations.Create(ctx, nil, &core.Liquidation{TraceID: "t1", Account: account}))
	require.NoError(t, liquidations.Create(ctx, nil, &core.Liquidation{TraceID: "t2", Account: account}))
	require.NoError(t, liquidations.Create(ctx, nil, &core.Liquidation{TraceID: trace, Account: liquidator}))

	h := Handle(&fakeService{}, liquidations)

	w := serve(h, "GET", "/accounts/"+account+"/liquidations?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []*core.Liquidation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "t2", list[0].TraceID)

	w = serve(h, "GET", "/liquidations/"+trace, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(h, "GET", "/liquidations/"+account, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h, "GET", "/liquidations/nope", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
