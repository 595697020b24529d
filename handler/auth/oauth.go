package auth

import (
	"net/http"

	"liquidator/core"
	"liquidator/handler/param"
	"liquidator/handler/render"

	"github.com/fox-one/mixin-sdk-go"
)

// HandleOauth exchanges a mixin oauth code for an access token
func HandleOauth(dapp core.Dapp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Code string `json:"code,omitempty" valid:"minstringlength(6),required"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		token, scope, err := mixin.AuthorizeToken(r.Context(), dapp.ClientID, dapp.ClientSecret, body.Code, "")
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"token": token, "scope": scope})
	}
}
