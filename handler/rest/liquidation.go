package rest

import (
	"errors"
	"net/http"

	"liquidator/core"
	"liquidator/handler/param"
	"liquidator/handler/render"
	"liquidator/handler/request"
	"liquidator/pkg/id"

	"github.com/go-chi/chi"
	"github.com/spf13/cast"
)

const maxListLimit = 100

func quoteHandler(liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req core.LiquidationRequest
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		if user, ok := request.UserFrom(r.Context()); ok {
			req.Liquidator = user.MixinID
		}

		result, err := liquidationSrv.QuoteCollateral(r.Context(), &req)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, result)
	}
}

func liquidateHandler(liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := request.UserFrom(r.Context())
		if !ok {
			render.Unauthorized(w, errors.New("login required"))
			return
		}

		var req core.LiquidationRequest
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		// liquidate only on behalf of the caller
		req.Liquidator = user.MixinID

		result, err := liquidationSrv.LiquidateCollateral(r.Context(), &req)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, result)
	}
}

func liquidationHandler(liquidationStr core.ILiquidationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceID := chi.URLParam(r, "trace_id")
		if !id.IsTraceID(traceID) {
			render.BadRequest(w, errors.New("invalid trace id"))
			return
		}

		liquidation, err := liquidationStr.FindByTraceID(r.Context(), traceID)
		if err != nil {
			render.Err(w, err)
			return
		}

		if liquidation.ID == 0 {
			render.NotFoundRequest(w, errors.New("liquidation not found"))
			return
		}

		render.JSON(w, liquidation)
	}
}

func accountLiquidationsHandler(liquidationStr core.ILiquidationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := cast.ToInt(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > maxListLimit {
			limit = maxListLimit
		}

		liquidations, err := liquidationStr.ListByAccount(r.Context(), chi.URLParam(r, "account"), limit)
		if err != nil {
			render.Err(w, err)
			return
		}

		if liquidations == nil {
			liquidations = []*core.Liquidation{}
		}

		render.JSON(w, liquidations)
	}
}
