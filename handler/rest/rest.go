package rest

import (
	"errors"
	"net/http"

	"liquidator/core"
	"liquidator/handler/auth"
	"liquidator/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(liquidationService core.ILiquidationService, liquidationStore core.ILiquidationStore) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/liquidations/quote", quoteHandler(liquidationService))
	router.With(auth.LoginRequired).Post("/liquidations", liquidateHandler(liquidationService))
	router.Get("/liquidations/{trace_id}", liquidationHandler(liquidationStore))
	router.Get("/accounts/{account}/liquidations", accountLiquidationsHandler(liquidationStore))

	return router
}
