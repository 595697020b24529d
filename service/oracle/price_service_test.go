package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"liquidator/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullPriceTicker(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/tickers/eth":
			assert.Equal(t, "1600000000", r.URL.Query().Get("ts"))
			_, _ = w.Write([]byte(`{"provider":"fox","symbol":"ETH","price":"1300.5"}`))
		case "/api/v2/tickers/zero":
			_, _ = w.Write([]byte(`{"symbol":"ZERO","price":"0"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"msg":"not found"}`))
		}
	}))
	defer ts.Close()

	s := New(core.PriceOracle{EndPoint: ts.URL})
	at := time.Unix(1600000000, 0)

	ticker, err := s.PullPriceTicker(context.Background(), "eth", at)
	require.NoError(t, err)
	assert.Equal(t, "ETH", ticker.Symbol)
	assert.Equal(t, "1300.5", ticker.Price.String())

	_, err = s.PullPriceTicker(context.Background(), "zero", at)
	assert.Error(t, err)

	_, err = s.PullPriceTicker(context.Background(), "missing", at)
	assert.Error(t, err)
}
